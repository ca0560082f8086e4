package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	AdminPassHash        string
	RoleSource           string
	SuppressCancelNotice bool
	RateLimitRPS         float64
	RateLimitBurst       int
	S3                   S3Config
	Logging              LoggingConfig
}

type S3Config struct {
	Endpoint       string
	PublicEndpoint string
	Bucket         string
	AccessKey      string
	SecretKey      string
	Region         string
	UseSSL         bool
}

type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                  getenv("APP_ENV", "dev"),
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		AdminPassHash:        os.Getenv("ADMIN_PASS_HASH"),
		RoleSource:           getenv("ACCESS_ROLE_SOURCE", "ticket"),
		SuppressCancelNotice: getenvBool("SUPPRESS_CANCEL_NOTICE", false),
		RateLimitRPS:         getenvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:       getenvInt("RATE_LIMIT_BURST", 10),
		S3: S3Config{
			Endpoint:       os.Getenv("S3_ENDPOINT"),
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			Bucket:         os.Getenv("S3_BUCKET"),
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			Region:         getenv("S3_REGION", "us-east-1"),
			UseSSL:         getenvBool("S3_USE_SSL", true),
		},
		Logging: LoggingConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "text"),
			File:   os.Getenv("LOG_FILE"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RoleSource != "ticket" && cfg.RoleSource != "metadata" {
		return nil, fmt.Errorf("ACCESS_ROLE_SOURCE must be ticket or metadata, got %q", cfg.RoleSource)
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return parsed
}
