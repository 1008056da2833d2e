package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server Server
	Auth   Auth
	Store  Store
	Events Events
	App    App
}

type Server struct {
	Port string
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type Store struct {
	// DSN selects the PostgreSQL-backed stores when set; empty means
	// in-memory demo mode.
	DSN      string
	SeedDemo bool
}

type Events struct {
	// RedisAddr selects the Redis pub/sub event bus when set; empty means
	// the in-process bus.
	RedisAddr     string
	RedisPassword string
}

type App struct {
	Environment   string
	Version       string
	GeocodeURL    string
	EscalateAfter time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: Server{
			Port: getEnv("PORT", "8080"),
		},
		Auth: Auth{
			JWTSecret: getEnv("JWT_SECRET", "huduma-dev-secret"),
			TokenTTL:  getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		},
		Store: Store{
			DSN:      getEnv("DB_DSN", ""),
			SeedDemo: getEnvAsBool("SEED_DEMO_DATA", true),
		},
		Events: Events{
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
		},
		App: App{
			Environment:   getEnv("APP_ENV", "development"),
			Version:       getEnv("APP_VERSION", "1.0.0"),
			GeocodeURL:    getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org"),
			EscalateAfter: getEnvAsDuration("ESCALATE_AFTER", 15*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.App.Environment == "production" && c.Auth.JWTSecret == "huduma-dev-secret" {
		return fmt.Errorf("JWT_SECRET must be set explicitly in production")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
