package config

import (
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // TZ works without a system zoneinfo

	"github.com/joho/godotenv"
)

// Database drivers understood by the database manager.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Env string

	// Server
	Port string

	// Database
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Backups
	BackupDir string

	// Presentation
	Location           *time.Location
	Currency           string
	UpcomingWindowDays int
	DashboardItemLimit int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", DriverSQLite),
		DBPath:     getEnv("DB_PATH", "continuum.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "continuum"),
		DBPassword: getEnv("DB_PASSWORD", "continuum"),
		DBName:     getEnv("DB_NAME", "continuum"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		BackupDir: getEnv("BACKUP_DIR", "."),
		Location:  getEnvLocation("TZ"),
		Currency:  getEnv("CURRENCY", "USD"),

		UpcomingWindowDays: getEnvInt("UPCOMING_WINDOW_DAYS", 30),
		DashboardItemLimit: getEnvInt("DASHBOARD_ITEM_LIMIT", 5),
	}

	if config.DBDriver != DriverSQLite && config.DBDriver != DriverPostgres {
		log.Printf("Warning: unknown DB_DRIVER '%s', falling back to %s\n", config.DBDriver, DriverSQLite)
		config.DBDriver = DriverSQLite
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvLocation loads the named IANA time zone, falling back to the
// system zone when unset or unknown.
func getEnvLocation(key string) *time.Location {
	name := os.Getenv(key)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: unknown %s value '%s', falling back to the system time zone\n", key, name)
		return time.Local
	}
	return loc
}

// getEnvInt parses a positive integer variable, warning and falling back on bad input.
func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
