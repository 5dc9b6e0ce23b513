package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string
	JWTSecret  string
	GinMode    string
	DataDir    string
	LogLevel   string
}

// Load reads configuration from the environment, honoring a .env file when
// present. DBPath is only used by the sqlite driver; the host/port/user
// fields only by mysql and postgres. DataDir and LogLevel belong to the
// local variant.
func Load() *Config {
	_ = godotenv.Load()

	home, _ := os.UserHomeDir()

	return &Config{
		Port:       getEnv("PORT", "5000"),
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "taskflow"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "taskflow"),
		DBPath:     getEnv("DB_PATH", "planner.sqlite"),
		JWTSecret:  getEnv("JWT_SECRET", "default-secret-key-change-me"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		DataDir:    getEnv("TASKFLOW_DATA_DIR", filepath.Join(home, ".taskflow")),
		LogLevel:   getEnv("TASKFLOW_LOG_LEVEL", "warn"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
