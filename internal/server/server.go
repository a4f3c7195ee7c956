package server

import (
	"log"

	"civicmap-be/internal/bootstrap"
	"civicmap-be/internal/config"
	"civicmap-be/internal/pkg/serverutils"
	ws "civicmap-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})

	// Page navigations pass through the visibility gate. The token is
	// decoded first when present so entitlement checks see the caller.
	app.Use(serverutils.OptionalJwtMiddleware)
	app.Use(serverutils.VisibilityMiddleware(container.VisibilityService, container.AuditTrail))

	// Static
	app.Static("/assets", "./assets")

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.VisibilityController.RegisterRoutes(api)
	c.MentionController.RegisterRoutes(api)
	c.AdminController.RegisterRoutes(api)

	// Live map events, open to anonymous viewers
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		userID := uuid.Nil
		if raw, ok := conn.Locals("user_id").(string); ok {
			if parsed, err := uuid.Parse(raw); err == nil {
				userID = parsed
			}
		}
		ws.ServeWs(c.WebSocketHub, conn, userID)
	}))
}
