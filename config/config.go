package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	FrontendURL string
	BackendURL  string

	// SMTP settings for the notification sink
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Payment gateway (SSLCommerz) settings
	SSLStoreID       string
	SSLStorePassword string
	SSLIsSandbox     bool
	SSLValidate      bool
}

// LoadConfig loads configuration from environment variables. The .env
// file is optional; deployments may inject variables directly.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if smtpPort == 0 {
		smtpPort = 587
	}

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),

		FrontendURL: os.Getenv("FRONTEND_URL"),
		BackendURL:  os.Getenv("BACKEND_URL"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		SSLStoreID:       os.Getenv("SSL_STORE_ID"),
		SSLStorePassword: os.Getenv("SSL_STORE_PASSWORD"),
		SSLIsSandbox:     os.Getenv("SSL_IS_SANDBOX") != "false",
		SSLValidate:      os.Getenv("SSL_VALIDATE") == "true",
	}

	return config, nil
}
