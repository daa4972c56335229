package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBPath string

	// JWT
	JWTSecret       string
	JWTAccessExpiry time.Duration

	// Remote catalog API
	CatalogBaseURL string
	CatalogTimeout time.Duration

	// Checkout
	CheckoutDelay time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBPath: getEnv("DB_PATH", "martapp.db"),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: parseDuration(getEnv("JWT_ACCESS_EXPIRY", "24h")),

		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "https://dummyjson.com"),
		CatalogTimeout: parseDuration(getEnv("CATALOG_TIMEOUT", "10s")),

		CheckoutDelay: parseDuration(getEnv("CHECKOUT_DELAY", "2s")),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
