package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	Database DatabaseConfig
	Session  SessionConfig
	JWT      JWTConfig
	Uploads  UploadConfig
}

type DatabaseConfig struct {
	URL string
}

type SessionConfig struct {
	Secret string
	Secure bool
}

type JWTConfig struct {
	Secret string
}

type UploadConfig struct {
	Dir string
}

func Load() (*Config, error) {
	godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			Secure: getEnv("SESSION_SECURE", "false") == "true",
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Uploads: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "uploads"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
