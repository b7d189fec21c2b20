package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config структура конфигурации
type Config struct {
	Port           string
	StorageDriver  string // postgres или memory
	DatabaseURL    string
	DatabaseConfig DatabaseConfig
	RedisAddr      string
	AppEnv         string
}

// DatabaseConfig содержит конфигурацию базы данных
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// LoadConfig загружает переменные из .env
func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️ .env файл не найден, используем переменные окружения")
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("PGHOST", "localhost"),
		Port:     getEnv("PGPORT", "5432"),
		User:     getEnv("PGUSER", "solemate_user"),
		Password: getEnv("PGPASSWORD", "solemate_pass"),
		Name:     getEnv("PGDATABASE", "solemate"),
		SSLMode:  getEnv("PGSSLMODE", "disable"),
	}

	// Формируем строку подключения к базе данных
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name, dbConfig.SSLMode)

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		StorageDriver:  getEnv("STORAGE_DRIVER", "postgres"),
		DatabaseURL:    dbURL,
		DatabaseConfig: dbConfig,
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		AppEnv:         getEnv("APP_ENV", "production"),
	}

	if cfg.StorageDriver != "postgres" && cfg.StorageDriver != "memory" {
		log.Fatalf("❌ Ошибка: неизвестный драйвер хранилища %q", cfg.StorageDriver)
	}

	return cfg
}

// getEnv получает переменную окружения или использует дефолтное значение
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
