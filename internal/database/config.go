package database

import (
	"fmt"
	"net/url"

	"continuum/internal/config"
)

// Config holds database connection settings
type Config struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewConfig creates a database configuration from the application config
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Driver:   cfg.DBDriver,
		Path:     cfg.DBPath,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

// DSN returns the connection string for the configured driver
func (c *Config) DSN() string {
	if c.Driver == config.DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	return c.Path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}

// MigrateURL returns the golang-migrate database URL for the configured driver
func (c *Config) MigrateURL() string {
	if c.Driver == config.DriverPostgres {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     c.Host + ":" + c.Port,
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
		}
		return u.String()
	}
	return "sqlite3://" + c.Path + "?_foreign_keys=on"
}

// migrationsDir is the embedded directory holding this driver's migrations
func (c *Config) migrationsDir() string {
	if c.Driver == config.DriverPostgres {
		return "postgres"
	}
	return "sqlite"
}
