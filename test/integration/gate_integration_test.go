package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"civicmap-be/internal/config"
	"civicmap-be/internal/entity"
	"civicmap-be/internal/pkg/logger"
	"civicmap-be/internal/repository/unitofwork"
	"civicmap-be/internal/service"
	"civicmap-be/pkg/database"
	"civicmap-be/pkg/entitlement"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

// Exercises the visibility gate against a real Postgres schema:
// systems and routes written through the repositories must drive the
// allow/deny decision exactly as the in-memory unit tests predict.
func TestVisibilityGateAgainstDB(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	cfg := config.Load()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	sysLogger := logger.NewZapLogger("logs/test.log", false)

	checker := entitlement.NewChecker(uowFactory)
	cached := entitlement.NewCachedChecker(checker, time.Minute)
	visibility := service.NewVisibilityService(uowFactory, cached, cfg, sysLogger)

	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	// Unique key per run so reruns do not collide
	suffix := uuid.New().String()[:8]
	sysKey := "it_stories_" + suffix
	prefix := "/it-stories-" + suffix

	system := &entity.System{
		Id:          uuid.New(),
		Key:         sysKey,
		Name:        "Integration Stories",
		RoutePrefix: prefix,
		IsVisible:   true,
		IsEnabled:   true,
	}
	if err := uow.SystemRepository().Create(ctx, system); err != nil {
		t.Fatalf("Failed to create system: %v", err)
	}
	defer uow.SystemRepository().Delete(ctx, system.Id)

	route := &entity.Route{
		Id:        uuid.New(),
		Path:      prefix + "/submit",
		SystemId:  &system.Id,
		IsVisible: true,
	}
	if err := uow.RouteRepository().Create(ctx, route); err != nil {
		t.Fatalf("Failed to create route: %v", err)
	}
	defer uow.RouteRepository().Delete(ctx, route.Id)

	anon := uuid.Nil

	t.Run("Active system is visible", func(t *testing.T) {
		assert.True(t, visibility.IsRouteVisible(ctx, route.Path, anon))
		assert.True(t, visibility.IsRouteVisible(ctx, prefix+"/anything", anon))
	})

	t.Run("Uncovered path defaults to allow", func(t *testing.T) {
		assert.True(t, visibility.IsRouteVisible(ctx, "/no-such-area-"+suffix, anon))
	})

	t.Run("Hiding the system denies and reports the name", func(t *testing.T) {
		system.IsVisible = false
		if err := uow.SystemRepository().Update(ctx, system); err != nil {
			t.Fatalf("Failed to update system: %v", err)
		}
		visibility.InvalidateRules()

		assert.False(t, visibility.IsRouteVisible(ctx, route.Path, anon))

		owner := visibility.SystemForRoute(ctx, route.Path)
		if assert.NotNil(t, owner) {
			assert.Equal(t, "Integration Stories", owner.Name)
		}
	})

	t.Run("Re-showing the system restores access", func(t *testing.T) {
		system.IsVisible = true
		if err := uow.SystemRepository().Update(ctx, system); err != nil {
			t.Fatalf("Failed to update system: %v", err)
		}
		visibility.InvalidateRules()

		assert.True(t, visibility.IsRouteVisible(ctx, route.Path, anon))
	})

	t.Run("Route override denies only its own path", func(t *testing.T) {
		route.IsVisible = false
		if err := uow.RouteRepository().Update(ctx, route); err != nil {
			t.Fatalf("Failed to update route: %v", err)
		}
		visibility.InvalidateRules()

		assert.False(t, visibility.IsRouteVisible(ctx, route.Path, anon))
		assert.True(t, visibility.IsRouteVisible(ctx, prefix+"/other", anon))
	})
}

// Verifies the capability path end to end: a gated system is closed to
// anonymous and ungranted users, open once the grant lands.
func TestEntitlementGateAgainstDB(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	cfg := config.Load()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	sysLogger := logger.NewZapLogger("logs/test.log", false)

	checker := entitlement.NewChecker(uowFactory)
	visibility := service.NewVisibilityService(uowFactory, checker, cfg, sysLogger)

	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	suffix := uuid.New().String()[:8]
	featureKey := "it_pro_" + suffix
	prefix := "/it-exports-" + suffix

	feature := &entity.Feature{
		Id:       uuid.New(),
		Key:      featureKey,
		Name:     "Integration Pro",
		IsActive: true,
	}
	if err := uow.FeatureRepository().Create(ctx, feature); err != nil {
		t.Fatalf("Failed to create feature: %v", err)
	}
	defer uow.FeatureRepository().Delete(ctx, feature.Id)

	system := &entity.System{
		Id:              uuid.New(),
		Key:             "it_exports_" + suffix,
		Name:            "Integration Exports",
		RoutePrefix:     prefix,
		IsVisible:       true,
		IsEnabled:       true,
		RequiresFeature: &featureKey,
	}
	if err := uow.SystemRepository().Create(ctx, system); err != nil {
		t.Fatalf("Failed to create system: %v", err)
	}
	defer uow.SystemRepository().Delete(ctx, system.Id)

	hash := "x"
	member := &entity.User{
		Id:           uuid.New(),
		Email:        "it-member-" + suffix + "@example.com",
		PasswordHash: &hash,
		FullName:     "Integration Member",
		Role:         entity.UserRoleUser,
		Status:       entity.UserStatusActive,
	}
	if err := uow.UserRepository().Create(ctx, member); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	defer uow.UserRepository().Delete(ctx, member.Id)

	t.Run("Anonymous is denied", func(t *testing.T) {
		assert.False(t, visibility.IsRouteVisible(ctx, prefix, uuid.Nil))
	})

	t.Run("Ungranted member is denied", func(t *testing.T) {
		assert.False(t, visibility.IsRouteVisible(ctx, prefix, member.Id))
	})

	t.Run("Granted member is allowed", func(t *testing.T) {
		grant := &entity.UserFeature{
			Id:        uuid.New(),
			UserId:    member.Id,
			FeatureId: feature.Id,
			GrantedAt: time.Now(),
		}
		if err := uow.FeatureRepository().Grant(ctx, grant); err != nil {
			t.Fatalf("Failed to grant feature: %v", err)
		}
		defer uow.FeatureRepository().Revoke(ctx, member.Id, feature.Id)
		visibility.InvalidateRules()

		assert.True(t, visibility.IsRouteVisible(ctx, prefix, member.Id))
	})
}
