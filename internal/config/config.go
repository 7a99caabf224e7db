package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Currency conversion
	BaseCurrency    string
	RatesAPIURL     string
	RatesAPITimeout time.Duration
	RatesAPIRPS     int

	// Xero invoice sync
	XeroBaseURL     string
	XeroAccessToken string
	XeroTenantID    string
	XeroMockLatency time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finance"),
		DBPassword: getEnv("DB_PASSWORD", "finance"),
		DBName:     getEnv("DB_NAME", "finance_tracker"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "finance_tracker.db"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		BaseCurrency: strings.ToUpper(getEnv("BASE_CURRENCY", "CAD")),
		RatesAPIURL:  strings.TrimRight(getEnv("RATES_API_URL", "https://api.frankfurter.app"), "/"),

		XeroBaseURL:     strings.TrimRight(getEnv("XERO_BASE_URL", "https://api.xero.com"), "/"),
		XeroAccessToken: getEnv("XERO_ACCESS_TOKEN", ""),
		XeroTenantID:    getEnv("XERO_TENANT_ID", ""),
	}

	config.JWTExpirationDur = getDuration("JWT_EXPIRES_IN", time.Hour)
	config.RatesAPITimeout = getDuration("RATES_API_TIMEOUT", 10*time.Second)
	config.XeroMockLatency = getDuration("XERO_MOCK_LATENCY", 100*time.Millisecond)
	config.RatesAPIRPS = getInt("RATES_API_RPS", 5)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// UseXeroAPI reports whether invoice sync should call the real Xero API
// instead of the built-in mock dataset.
func (c *Config) UseXeroAPI() bool {
	return c.XeroAccessToken != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
