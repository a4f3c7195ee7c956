package main

import (
	"log"
	"os"

	"civicmap-be/internal/model"
	"civicmap-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedSystems(db)
	seedRoutes(db)
	seedFeatures(db)
	seedAdminUser(db)

	color.Green("Seeding completed!")
}

func seedSystems(db *gorm.DB) {
	color.Cyan("Seeding Systems...")

	proKey := "pro"
	systems := []model.System{
		{Key: "stories", Name: "Community Stories", RoutePrefix: "/stories", IsVisible: true, IsEnabled: true, SortOrder: 1},
		{Key: "mentions", Name: "Mentions Map", RoutePrefix: "/mentions", IsVisible: true, IsEnabled: true, SortOrder: 2},
		{Key: "checkbook", Name: "State Checkbook", RoutePrefix: "/checkbook", IsVisible: true, IsEnabled: true, SortOrder: 3},
		{Key: "districts", Name: "Legislative Districts", RoutePrefix: "/districts", IsVisible: true, IsEnabled: true, SortOrder: 4},
		{Key: "exports", Name: "Bulk Data Exports", RoutePrefix: "/exports", IsVisible: true, IsEnabled: true, RequiresFeature: &proKey, SortOrder: 5},
	}

	for _, s := range systems {
		var existing model.System
		if err := db.Where("key = ?", s.Key).First(&existing).Error; err == nil {
			color.Yellow("System '%s' already exists, skipping...", s.Key)
			continue
		}
		if err := db.Create(&s).Error; err != nil {
			color.Red("Error creating system '%s': %v", s.Key, err)
		} else {
			color.Green("Created system: %s (%s)", s.Name, s.Key)
		}
	}
}

func seedRoutes(db *gorm.DB) {
	color.Cyan("Seeding Routes...")

	type routeSeed struct {
		path      string
		systemKey string
	}
	seeds := []routeSeed{
		{"/stories", "stories"},
		{"/stories/submit", "stories"},
		{"/checkbook", "checkbook"},
		{"/checkbook/budgets", "checkbook"},
		{"/districts", "districts"},
		{"/exports", "exports"},
	}

	for _, seed := range seeds {
		var existing model.Route
		if err := db.Where("path = ?", seed.path).First(&existing).Error; err == nil {
			color.Yellow("Route '%s' already exists, skipping...", seed.path)
			continue
		}

		var sys model.System
		route := model.Route{Path: seed.path, IsVisible: true}
		if err := db.Where("key = ?", seed.systemKey).First(&sys).Error; err == nil {
			route.SystemId = &sys.Id
		}
		if err := db.Create(&route).Error; err != nil {
			color.Red("Error creating route '%s': %v", seed.path, err)
		} else {
			color.Green("Created route: %s", seed.path)
		}
	}
}

func seedFeatures(db *gorm.DB) {
	color.Cyan("Seeding Feature Catalog...")

	features := []model.Feature{
		{Key: "pro", Name: "Pro Access", Description: "Unlocks member-only areas of the site", IsActive: true, SortOrder: 1},
		{Key: "bulk_data", Name: "Bulk Data Access", Description: "Download full datasets behind the maps", IsActive: true, SortOrder: 2},
		{Key: "early_access", Name: "Early Access", Description: "See features still hidden from the public", IsActive: true, SortOrder: 3},
	}

	for _, f := range features {
		var existing model.Feature
		if err := db.Where("key = ?", f.Key).First(&existing).Error; err == nil {
			color.Yellow("Feature '%s' already exists, skipping...", f.Key)
			continue
		}
		if err := db.Create(&f).Error; err != nil {
			color.Red("Error creating feature '%s': %v", f.Key, err)
		} else {
			color.Green("Created feature: %s (%s)", f.Name, f.Key)
		}
	}
}

func seedAdminUser(db *gorm.DB) {
	color.Cyan("Seeding Admin User...")

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@civicmap.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		color.Yellow("SEED_ADMIN_PASSWORD not set, using default (change it)")
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Admin user '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error hashing admin password: %v", err)
		return
	}
	hashStr := string(hash)

	admin := model.User{
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     "Site Administrator",
		Role:         "admin",
		Status:       "active",
	}
	if err := db.Create(&admin).Error; err != nil {
		color.Red("Error creating admin user: %v", err)
	} else {
		color.Green("Created admin user: %s", email)
	}
}
