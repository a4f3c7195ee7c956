package controller

import (
	"os"

	"civicmap-be/internal/dto"
	"civicmap-be/internal/entity"
	"civicmap-be/internal/pkg/serverutils"
	"civicmap-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)

	Login(ctx *fiber.Ctx) error

	GetAllSystems(ctx *fiber.Ctx) error
	CreateSystem(ctx *fiber.Ctx) error
	UpdateSystem(ctx *fiber.Ctx) error
	DeleteSystem(ctx *fiber.Ctx) error

	GetAllRoutes(ctx *fiber.Ctx) error
	CreateRoute(ctx *fiber.Ctx) error
	UpdateRoute(ctx *fiber.Ctx) error
	DeleteRoute(ctx *fiber.Ctx) error

	GetAllFeatures(ctx *fiber.Ctx) error
	CreateFeature(ctx *fiber.Ctx) error
	UpdateFeature(ctx *fiber.Ctx) error
	DeleteFeature(ctx *fiber.Ctx) error
	GrantFeature(ctx *fiber.Ctx) error
	RevokeFeature(ctx *fiber.Ctx) error
}

type adminController struct {
	service     service.IAdminService
	authService service.IAuthService
	validate    *validator.Validate
}

func NewAdminController(service service.IAdminService, authService service.IAuthService) IAdminController {
	return &adminController{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// adminMiddleware rejects callers whose JWT does not carry role=admin.
func (c *adminController) adminMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing or invalid authorization header"))
	}
	tokenStr := authHeader[7:]

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid or expired token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token claims"))
	}

	role, ok := claims["role"].(string)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Role missing"))
	}
	if role != string(entity.UserRoleAdmin) {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Admins only"))
	}

	if userId, exists := claims["user_id"]; exists {
		ctx.Locals("user_id", userId)
	}
	return ctx.Next()
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")

	h.Post("/login", c.Login)

	h.Use(c.adminMiddleware)

	h.Get("/systems", c.GetAllSystems)
	h.Post("/systems", c.CreateSystem)
	h.Put("/systems/:id", c.UpdateSystem)
	h.Delete("/systems/:id", c.DeleteSystem)

	h.Get("/routes", c.GetAllRoutes)
	h.Post("/routes", c.CreateRoute)
	h.Put("/routes/:id", c.UpdateRoute)
	h.Delete("/routes/:id", c.DeleteRoute)

	h.Get("/features", c.GetAllFeatures)
	h.Post("/features", c.CreateFeature)
	h.Put("/features/:id", c.UpdateFeature)
	h.Delete("/features/:id", c.DeleteFeature)
	h.Post("/features/grants", c.GrantFeature)
	h.Delete("/features/grants/:userId/:featureId", c.RevokeFeature)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.authService.Login(ctx.Context(), req)
	if err != nil {
		// Generic 401 so callers cannot probe which part failed
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid email or password"))
	}
	if res.User.Role != string(entity.UserRoleAdmin) {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Admins only"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Admin login successful", res))
}

// --- Systems ---

func (c *adminController) GetAllSystems(ctx *fiber.Ctx) error {
	systems, err := c.service.GetAllSystems(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	res := make([]dto.SystemResponse, 0, len(systems))
	for _, sys := range systems {
		res = append(res, toSystemResponse(sys))
	}
	return ctx.JSON(serverutils.SuccessResponse("Systems", res))
}

func (c *adminController) CreateSystem(ctx *fiber.Ctx) error {
	var req dto.CreateSystemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	sys, err := c.service.CreateSystem(ctx.Context(), req)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("System created", toSystemResponse(sys)))
}

func (c *adminController) UpdateSystem(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid system id"))
	}
	var req dto.UpdateSystemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	sys, err := c.service.UpdateSystem(ctx.Context(), id, req)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("System updated", toSystemResponse(sys)))
}

func (c *adminController) DeleteSystem(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid system id"))
	}
	if err := c.service.DeleteSystem(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("System deleted", nil))
}

// --- Routes ---

func (c *adminController) GetAllRoutes(ctx *fiber.Ctx) error {
	routes, err := c.service.GetAllRoutes(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	res := make([]dto.RouteResponse, 0, len(routes))
	for _, rt := range routes {
		res = append(res, toRouteResponse(rt))
	}
	return ctx.JSON(serverutils.SuccessResponse("Routes", res))
}

func (c *adminController) CreateRoute(ctx *fiber.Ctx) error {
	var req dto.CreateRouteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	rt, err := c.service.CreateRoute(ctx.Context(), req)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Route created", toRouteResponse(rt)))
}

func (c *adminController) UpdateRoute(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid route id"))
	}
	var req dto.UpdateRouteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	rt, err := c.service.UpdateRoute(ctx.Context(), id, req)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Route updated", toRouteResponse(rt)))
}

func (c *adminController) DeleteRoute(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid route id"))
	}
	if err := c.service.DeleteRoute(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Route deleted", nil))
}

// --- Capability catalog ---

func (c *adminController) GetAllFeatures(ctx *fiber.Ctx) error {
	features, err := c.service.GetAllFeatures(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	res := make([]dto.FeatureResponse, 0, len(features))
	for _, feat := range features {
		res = append(res, toFeatureResponse(feat))
	}
	return ctx.JSON(serverutils.SuccessResponse("Features", res))
}

func (c *adminController) CreateFeature(ctx *fiber.Ctx) error {
	var req dto.CreateFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	feat, err := c.service.CreateFeature(ctx.Context(), req)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Feature created", toFeatureResponse(feat)))
}

func (c *adminController) UpdateFeature(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid feature id"))
	}
	var req dto.UpdateFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	feat, err := c.service.UpdateFeature(ctx.Context(), id, req)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature updated", toFeatureResponse(feat)))
}

func (c *adminController) DeleteFeature(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid feature id"))
	}
	if err := c.service.DeleteFeature(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature deleted", nil))
}

func (c *adminController) GrantFeature(ctx *fiber.Ctx) error {
	var req dto.GrantFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	grant, err := c.service.GrantFeature(ctx.Context(), req)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Feature granted", grant))
}

func (c *adminController) RevokeFeature(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("userId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user id"))
	}
	featureId, err := uuid.Parse(ctx.Params("featureId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid feature id"))
	}
	if err := c.service.RevokeFeature(ctx.Context(), userId, featureId); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature revoked", nil))
}

// --- response mapping ---

func toSystemResponse(sys *entity.System) dto.SystemResponse {
	return dto.SystemResponse{
		Id:              sys.Id,
		Key:             sys.Key,
		Name:            sys.Name,
		RoutePrefix:     sys.RoutePrefix,
		IsVisible:       sys.IsVisible,
		IsEnabled:       sys.IsEnabled,
		State:           systemState(sys),
		RequiresFeature: sys.RequiresFeature,
		Metadata:        sys.Metadata,
		SortOrder:       sys.SortOrder,
	}
}

func systemState(sys *entity.System) string {
	switch {
	case sys.IsVisible && sys.IsEnabled:
		return "active"
	case !sys.IsVisible && sys.IsEnabled:
		return "hidden"
	case sys.IsVisible && !sys.IsEnabled:
		return "disabled"
	default:
		return "off"
	}
}

func toRouteResponse(rt *entity.Route) dto.RouteResponse {
	return dto.RouteResponse{
		Id:              rt.Id,
		Path:            rt.Path,
		SystemId:        rt.SystemId,
		IsVisible:       rt.IsVisible,
		RequiresFeature: rt.RequiresFeature,
	}
}

func toFeatureResponse(feat *entity.Feature) dto.FeatureResponse {
	return dto.FeatureResponse{
		Id:          feat.Id,
		Key:         feat.Key,
		Name:        feat.Name,
		Description: feat.Description,
		IsActive:    feat.IsActive,
		SortOrder:   feat.SortOrder,
	}
}
