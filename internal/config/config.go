package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	JWT    JWTConfig
	Queue  QueueConfig
}

type ServerConfig struct {
	Port        string
	DatabaseDSN string
	GinMode     string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type QueueConfig struct {
	// PerCustomerMinutes drives wait-time estimates: position index times
	// this constant. Not based on service-time history.
	PerCustomerMinutes int
	// RefreshInterval is how often queue displays are re-derived and pushed.
	RefreshInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			DatabaseDSN: getEnv("DATABASE_URL", "barberq.db"),
			GinMode:     getEnv("GIN_MODE", "debug"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
		},
		Queue: QueueConfig{
			PerCustomerMinutes: getEnvAsInt("QUEUE_PER_CUSTOMER_MINUTES", 15),
			RefreshInterval:    time.Duration(getEnvAsInt("QUEUE_REFRESH_SECONDS", 30)) * time.Second,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
