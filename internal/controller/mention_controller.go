package controller

import (
	"errors"

	"civicmap-be/internal/dto"
	"civicmap-be/internal/entity"
	"civicmap-be/internal/pkg/serverutils"
	"civicmap-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMentionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetByID(ctx *fiber.Ctx) error
	GetInBounds(ctx *fiber.Ctx) error
	GetMine(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type mentionController struct {
	service  service.IMentionService
	validate *validator.Validate
}

func NewMentionController(service service.IMentionService) IMentionController {
	return &mentionController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *mentionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mentions")

	h.Get("/", c.GetInBounds)
	h.Get("/mine", serverutils.JwtMiddleware, c.GetMine)
	h.Get("/:id", c.GetByID)
	h.Post("/", serverutils.JwtMiddleware, c.Create)
	h.Delete("/:id", serverutils.JwtMiddleware, c.Delete)
}

func (c *mentionController) Create(ctx *fiber.Ctx) error {
	userId, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user session"))
	}

	var req dto.CreateMentionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	mention, err := c.service.Create(ctx.Context(), userId, req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Mention created", toMentionResponse(mention)))
}

func (c *mentionController) GetByID(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid mention id"))
	}

	mention, err := c.service.GetByID(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMentionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Mention not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Mention", toMentionResponse(mention)))
}

// GetInBounds serves the map viewport: /api/mentions?min_lat=..&max_lat=..
func (c *mentionController) GetInBounds(ctx *fiber.Ctx) error {
	var q dto.BoundsQuery
	if err := ctx.QueryParser(&q); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid bounds"))
	}
	if q.MinLat > q.MaxLat || q.MinLng > q.MaxLng {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Bounds are inverted"))
	}

	bounds := entity.BoundingBox{
		MinLat: q.MinLat,
		MinLng: q.MinLng,
		MaxLat: q.MaxLat,
		MaxLng: q.MaxLng,
	}
	mentions, err := c.service.GetInBounds(ctx.Context(), bounds, q.Limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	res := make([]dto.MentionResponse, 0, len(mentions))
	for _, m := range mentions {
		res = append(res, toMentionResponse(m))
	}
	return ctx.JSON(serverutils.SuccessResponse("Mentions in bounds", res))
}

func (c *mentionController) GetMine(ctx *fiber.Ctx) error {
	userId, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user session"))
	}

	mentions, err := c.service.GetByUser(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	res := make([]dto.MentionResponse, 0, len(mentions))
	for _, m := range mentions {
		res = append(res, toMentionResponse(m))
	}
	return ctx.JSON(serverutils.SuccessResponse("Your mentions", res))
}

func (c *mentionController) Delete(ctx *fiber.Ctx) error {
	userId, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user session"))
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid mention id"))
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		switch {
		case errors.Is(err, service.ErrMentionNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Mention not found"))
		case errors.Is(err, service.ErrNotMentionOwner):
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Not your mention"))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
	}
	return ctx.JSON(serverutils.SuccessResponse("Mention deleted", nil))
}

// callerID reads the authenticated user's id set by the JWT middleware.
func callerID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, errors.New("missing user_id")
	}
	return uuid.Parse(raw)
}

func toMentionResponse(m *entity.Mention) dto.MentionResponse {
	res := dto.MentionResponse{
		Id:        m.Id,
		UserId:    m.UserId,
		Title:     m.Title,
		Body:      m.Body,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		CreatedAt: m.CreatedAt,
	}
	for _, media := range m.Media {
		res.Media = append(res.Media, dto.MentionMediaDTO{
			URL:         media.URL,
			ContentType: media.ContentType,
		})
	}
	return res
}
