package infra

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"vehicledebts/validation"
)

type Config struct {
	ServerName      string
	ServerPort      string
	Environment     string
	LogMode         string
	DetranSPURL     string
	DetranSPTimeout time.Duration
	RedisUrl        string
	QuotaLimit      int64
	QuotaWindow     time.Duration
}

func NewConfig() Config {
	if os.Getenv("ENVIRONMENT") == "" {
		if err := godotenv.Load(".env"); err != nil {
			panic("Error loading env file")
		}
	}

	timeout, err := validation.ParseStringToDuration(os.Getenv("DETRAN_SP_TIMEOUT"))
	if err != nil {
		panic("invalid DETRAN_SP_TIMEOUT: " + err.Error())
	}
	quotaLimit, err := validation.ParseStringToInt64(os.Getenv("QUOTA_LIMIT"))
	if err != nil {
		panic("invalid QUOTA_LIMIT: " + err.Error())
	}
	quotaWindow, err := validation.ParseStringToDuration(os.Getenv("QUOTA_WINDOW"))
	if err != nil {
		panic("invalid QUOTA_WINDOW: " + err.Error())
	}

	return Config{
		ServerName:      getEnv("SERVER_NAME", "vehicledebts"),
		ServerPort:      getEnv("SERVER_PORT", ":8080"),
		Environment:     os.Getenv("ENVIRONMENT"),
		LogMode:         getEnv("LOG_MODE", "dev"),
		DetranSPURL:     os.Getenv("DETRAN_SP_URL"),
		DetranSPTimeout: orDefault(timeout, 30*time.Second),
		RedisUrl:        os.Getenv("REDIS_URL"),
		QuotaLimit:      orDefault(quotaLimit, 60),
		QuotaWindow:     orDefault(quotaWindow, time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func orDefault[T int64 | time.Duration](value, fallback T) T {
	if value <= 0 {
		return fallback
	}
	return value
}
