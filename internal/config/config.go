package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Shared secret used to verify identity-provider tokens. When empty,
	// token signatures are not verified; that mode is for development only.
	AuthJWTSecret string

	// Identity provider admin API, used to look up a subject's email when the
	// token carries no email claim. All optional.
	IdentityAPIBaseURL   string
	IdentityTokenURL     string
	IdentityClientID     string
	IdentityClientSecret string

	// SES notification settings. Email sending is disabled when the from
	// address is not configured.
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./skillbridge.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),

		IdentityAPIBaseURL:   getEnv("IDENTITY_API_BASE_URL", ""),
		IdentityTokenURL:     getEnv("IDENTITY_TOKEN_URL", ""),
		IdentityClientID:     getEnv("IDENTITY_CLIENT_ID", ""),
		IdentityClientSecret: getEnv("IDENTITY_CLIENT_SECRET", ""),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Skillbridge"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
