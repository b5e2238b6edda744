package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"trip_ledger/internal/models"
)

// Config is everything the server reads from the environment at startup.
type Config struct {
	Port string

	DBDriver   string // "postgres" or "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string
	SQLitePath string

	StorageDir    string
	PublicURL     string
	MaxPhotoBytes int64

	SuperPIN string
	AdminPIN string

	CORSOrigins []string

	LogFile  string
	LogLevel string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found – relying on env vars")
	}

	return Config{
		Port: getEnv("APP_PORT", "8080"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "trip_ledger"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),
		SQLitePath: getEnv("SQLITE_PATH", "trip_ledger.db"),

		StorageDir:    getEnv("STORAGE_DIR", "./storage"),
		PublicURL:     strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
		MaxPhotoBytes: int64(getEnvInt("MAX_PHOTO_MB", 5)) << 20,

		SuperPIN: os.Getenv("PIN_SUPER"),
		AdminPIN: os.Getenv("PIN_ADMIN"),

		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),

		LogFile:  getEnv("LOG_FILE", "./logs/app.log"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// DSN builds the Postgres data source name.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimezone,
	)
}

// PINs maps each role to its configured PIN; roles without a PIN are left out.
func (c Config) PINs() map[string]string {
	pins := map[string]string{}
	if c.SuperPIN != "" {
		pins[models.RoleSuper] = c.SuperPIN
	}
	if c.AdminPIN != "" {
		pins[models.RoleAdmin] = c.AdminPIN
	}
	return pins
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists && v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logrus.WithField(key, v).Warn("invalid integer in env, using default")
		return defaultValue
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
