package controller

import (
	"civicmap-be/internal/dto"
	"civicmap-be/internal/pkg/serverutils"
	"civicmap-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVisibilityController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
	SystemForRoute(ctx *fiber.Ctx) error
}

type visibilityController struct {
	service service.IVisibilityService
}

func NewVisibilityController(service service.IVisibilityService) IVisibilityController {
	return &visibilityController{service: service}
}

func (c *visibilityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/visibility")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Get("/check", c.Check)
	h.Get("/system", c.SystemForRoute)
}

// Check answers the client router's pre-navigation probe:
// GET /api/visibility/check?path=/stories/42
func (c *visibilityController) Check(ctx *fiber.Ctx) error {
	path := ctx.Query("path")
	if path == "" || path[0] != '/' {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "path query parameter must start with /"))
	}

	userID := uuid.Nil
	if raw, ok := ctx.Locals("user_id").(string); ok {
		if parsed, err := uuid.Parse(raw); err == nil {
			userID = parsed
		}
	}

	res := dto.VisibilityCheckResponse{
		Path:    path,
		Visible: c.service.IsRouteVisible(ctx.Context(), path, userID),
	}
	if !res.Visible {
		if sys := c.service.SystemForRoute(ctx.Context(), path); sys != nil {
			res.SystemKey = sys.Key
			res.SystemName = sys.Name
		}
	}
	return ctx.JSON(serverutils.SuccessResponse("Visibility check", res))
}

// SystemForRoute resolves which system owns a path, visible or not.
func (c *visibilityController) SystemForRoute(ctx *fiber.Ctx) error {
	path := ctx.Query("path")
	if path == "" || path[0] != '/' {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "path query parameter must start with /"))
	}

	sys := c.service.SystemForRoute(ctx.Context(), path)
	if sys == nil {
		return ctx.JSON(serverutils.SuccessResponse("No owning system", nil))
	}
	return ctx.JSON(serverutils.SuccessResponse("Owning system", fiber.Map{
		"key":   sys.Key,
		"name":  sys.Name,
		"state": string(sys.State()),
	}))
}
