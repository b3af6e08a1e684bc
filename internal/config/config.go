package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/foodhub75/Food-App/internal/models"
)

type Config struct {
	Port          string
	JWTSecret     string
	RefreshSecret string
	AdminPassword string
	GeminiAPIKey  string
	GeminiBaseURL string
	KafkaAddress  string
	LogLevel      string
	PaymentDelay  time.Duration
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		Port:          os.Getenv("PORT"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RefreshSecret: os.Getenv("REFRESH_SECRET"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		KafkaAddress:  os.Getenv("KAFKA_ADDRESS"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		PaymentDelay:  paymentDelay(),
	}

	if config.Port == "" {
		config.Port = "8080"
	}
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if config.RefreshSecret == "" {
		return nil, fmt.Errorf("REFRESH_SECRET is required")
	}
	if config.AdminPassword == "" {
		config.AdminPassword = "123"
	}

	return config, nil
}

func paymentDelay() time.Duration {
	ms := 2500
	if v := os.Getenv("PAYMENT_DELAY_MS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			ms = parsed
		}
	}
	return time.Duration(ms) * time.Millisecond
}

// InitDB opens the in-memory store. Everything lives and dies with the process:
// there is no file, no server, no persistence across restarts.
func InitDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory db: %w", err)
	}
	if err := db.AutoMigrate(
		&models.MenuItem{},
		&models.User{},
		&models.RefreshToken{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}
	return db, nil
}
