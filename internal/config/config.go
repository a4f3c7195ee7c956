package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Gate     GateConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// GateConfig tunes the route visibility gate.
type GateConfig struct {
	AdminPrefix        string
	RuleCacheTTLSec    int
	EntitlementsTTLSec int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "default_secret"),
			TokenTTLHours: getEnvAsInt("JWT_TTL_HOURS", 24),
		},
		Gate: GateConfig{
			AdminPrefix:        getEnv("GATE_ADMIN_PREFIX", "/admin"),
			RuleCacheTTLSec:    getEnvAsInt("GATE_RULE_CACHE_TTL_SECONDS", 15),
			EntitlementsTTLSec: getEnvAsInt("GATE_ENTITLEMENT_CACHE_TTL_SECONDS", 60),
		},
	}
}

// IsDevelopment reports whether the app runs in local development mode.
// The visibility gate's not-provisioned exception only applies here.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
