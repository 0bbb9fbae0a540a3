package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	Environment       string
	DatabasePath      string
	UploadDir         string
	JWTSecret         string
	AdminPasswordHash string
	SendgridAPIKey    string
	SendgridFromEmail string
	SendgridFromName  string
	StudioName        string
	GalleryBaseURL    string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:              os.Getenv("PORT"),
		Environment:       os.Getenv("ENV"),
		DatabasePath:      os.Getenv("DATABASE_PATH"),
		UploadDir:         os.Getenv("UPLOAD_DIR"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SendgridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendgridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		SendgridFromName:  os.Getenv("SENDGRID_FROM_NAME"),
		StudioName:        os.Getenv("STUDIO_NAME"),
		GalleryBaseURL:    os.Getenv("GALLERY_BASE_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.StudioName == "" {
		cfg.StudioName = "LueurStudio"
	}
	if cfg.SendgridFromName == "" {
		cfg.SendgridFromName = cfg.StudioName
	}

	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("DATABASE_PATH is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	if cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is required but not set")
	}

	return cfg, nil
}
