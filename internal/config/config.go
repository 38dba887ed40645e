package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type DatabaseConfig struct {
	Type     string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SQLPath  string
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// AuthConfig carries the fixed default passwords used when a profile is
// created without one. Seed-only convenience, not a trust boundary.
type AuthConfig struct {
	DefaultStudentPassword string
	DefaultTeacherPassword string
}

func Load() *Config {
	// .env is optional; plain environment variables win when it is absent
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Type:     getEnv("DB_TYPE", "sqlite"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "schoolms"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "schoolms_db"),
			SQLPath:  getEnv("SQLITE_PATH", "./schoolms.db"),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "default-secret-key-change-me"),
			AccessTokenExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h")),
		},
		Auth: AuthConfig{
			DefaultStudentPassword: getEnv("DEFAULT_STUDENT_PASSWORD", "student123"),
			DefaultTeacherPassword: getEnv("DEFAULT_TEACHER_PASSWORD", "teacher123"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration format for %s, using default", s)
		return 24 * time.Hour
	}
	return duration
}
