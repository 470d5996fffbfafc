// Package auth provides password accounts, sessions, and API keys.
package auth

import "os"

// Config holds authentication configuration.
type Config struct {
	AdminEmail    string
	AdminPassword string // used once to seed the admin account
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPass      string
	SMTPFrom      string
	DevMode       bool
	BaseURL       string // e.g. http://localhost:8080
}

// ConfigFromEnv creates a Config from environment variables.
func ConfigFromEnv() Config {
	return Config{
		AdminEmail:    envOrDefault("REA_ADMIN_EMAIL", "admin@realestate.com"),
		AdminPassword: os.Getenv("REA_ADMIN_PASSWORD"),
		SMTPHost:      os.Getenv("REA_SMTP_HOST"),
		SMTPPort:      envOrDefault("REA_SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("REA_SMTP_USER"),
		SMTPPass:      os.Getenv("REA_SMTP_PASS"),
		SMTPFrom:      os.Getenv("REA_SMTP_FROM"),
		DevMode:       os.Getenv("REA_DEV_MODE") == "true",
		BaseURL:       envOrDefault("REA_BASE_URL", "http://localhost:8080"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
