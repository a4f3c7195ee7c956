package bootstrap

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"civicmap-be/internal/config"
	"civicmap-be/internal/controller"
	"civicmap-be/internal/pkg/logger"
	"civicmap-be/internal/repository/unitofwork"
	"civicmap-be/internal/service"
	"civicmap-be/internal/websocket"
	adminEvents "civicmap-be/pkg/admin/events"
	"civicmap-be/pkg/admin/feature"
	"civicmap-be/pkg/admin/route"
	"civicmap-be/pkg/admin/system"
	"civicmap-be/pkg/audit"
	"civicmap-be/pkg/entitlement"
	"civicmap-be/pkg/events"

	pkgNats "civicmap-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	AdminController      controller.IAdminController
	MentionController    controller.IMentionController
	VisibilityController controller.IVisibilityController

	// Shared services, exposed for the server's middleware wiring
	VisibilityService service.IVisibilityService
	AuditTrail        *audit.Trail
	WebSocketHub      *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub for live map events
	wsLogger := logger.NewIsolatedLogger("logs/mapevents.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Denial audit trail, consumed on its own logger
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	auditTrail := audit.NewTrail(auditLogger)
	if err := auditTrail.Run(context.Background()); err != nil {
		log.Printf("[WARN] Audit trail consumer failed to start: %v", err)
	}

	// 3. Visibility gate stack
	entitlementChecker := entitlement.NewChecker(uowFactory)
	cachedEntitlements := entitlement.NewCachedChecker(
		entitlementChecker,
		time.Duration(cfg.Gate.EntitlementsTTLSec)*time.Second,
	)

	visibilityService := service.NewVisibilityService(uowFactory, cachedEntitlements, cfg, sysLogger)

	// Cross-instance invalidation: every node hears every toggle.
	if natsSub != nil {
		instance, _ := os.Hostname()
		if instance == "" {
			instance = "local"
		}
		invalidate := func(ctx context.Context, event events.Event) error {
			visibilityService.InvalidateRules()
			return nil
		}
		subscriptions := map[string]pkgNats.EventHandler{
			"civicmap." + events.TypeSystemToggled: invalidate,
			"civicmap." + events.TypeRouteToggled:  invalidate,
			"civicmap." + events.TypeFeatureChanged: func(ctx context.Context, event events.Event) error {
				cachedEntitlements.Flush()
				return nil
			},
		}
		for subject, handler := range subscriptions {
			// Durable names must not contain dots
			durable := strings.NewReplacer(".", "_", "-", "_").Replace(instance + "_" + subject)
			if err := natsSub.Subscribe(subject, durable, handler); err != nil {
				log.Printf("[WARN] Failed to subscribe to %s: %v", subject, err)
			}
		}
	}

	// 4. Admin domain components
	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)
	systemManager := system.NewManager()
	routeManager := route.NewManager()
	featureManager := feature.NewManager()

	adminService := service.NewAdminService(
		uowFactory,
		systemManager,
		routeManager,
		featureManager,
		adminEventPublisher,
		visibilityService,
		cachedEntitlements,
		wsHub,
	)

	// 5. Application services
	authService := service.NewAuthService(uowFactory, cfg)
	mentionService := service.NewMentionService(uowFactory, adminEventPublisher, wsHub)

	return &Container{
		AuthController:       controller.NewAuthController(authService),
		AdminController:      controller.NewAdminController(adminService, authService),
		MentionController:    controller.NewMentionController(mentionService),
		VisibilityController: controller.NewVisibilityController(visibilityService),

		VisibilityService: visibilityService,
		AuditTrail:        auditTrail,
		WebSocketHub:      wsHub,
	}
}
