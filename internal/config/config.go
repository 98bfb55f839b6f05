package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	Env                 string
	DatabaseURL         string
	Port                string
	PopularDefaultCount int // 排行接口未传 count 时的默认条数
}

// Load 加载配置
func Load() *Config {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "filmorate")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	defaultCount, err := strconv.Atoi(getEnv("POPULAR_DEFAULT_COUNT", "10"))
	if err != nil || defaultCount <= 0 {
		defaultCount = 10
	}

	return &Config{
		Env:                 getEnv("APP_ENV", "development"),
		DatabaseURL:         dbURL,
		Port:                getEnv("PORT", "5005"),
		PopularDefaultCount: defaultCount,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
