package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	CORSOrigin string

	PaymentAPIURL         string
	PaymentMirrorAttempts int
	PaymentMirrorWorkers  int

	RequestTimeout       time.Duration
	UserStatsConcurrency int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    envOr("APP_PORT", "4000"),
		AppEnv:     os.Getenv("APP_ENV"),
		CORSOrigin: os.Getenv("CORS_ORIGIN"),

		PaymentAPIURL:         envOr("PAYMENT_API_URL", "http://localhost:4001"),
		PaymentMirrorAttempts: envInt("PAYMENT_MIRROR_ATTEMPTS", 5),
		PaymentMirrorWorkers:  envInt("PAYMENT_MIRROR_WORKERS", 2),

		RequestTimeout:       envDuration("REQUEST_TIMEOUT", 30*time.Second),
		UserStatsConcurrency: envInt("USER_STATS_CONCURRENCY", 8),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
