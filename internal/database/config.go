package database

import (
	"fmt"
)

// DatabaseConfig selects the driver and carries its connection settings.
// Postgres serves deployments, sqlite local development and tests.
type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite"; empty defaults to sqlite
	Driver string

	// PostgreSQL connection settings
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// Path is the sqlite database file
	Path string
}

// String returns a representation safe for logs, with the password masked
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.Driver, c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// DSN builds the driver-specific data source name
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case "sqlite", "":
		return c.Path
	default:
		return ""
	}
}
