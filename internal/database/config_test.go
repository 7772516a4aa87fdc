package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	testCases := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "postgres",
			config: DatabaseConfig{
				Driver: "postgres", Host: "db", Port: "5432", User: "app",
				Password: "secret", Name: "recipes", SSLMode: "disable",
			},
			expected: "host=db user=app password=secret dbname=recipes port=5432 sslmode=disable",
		},
		{
			name:     "sqlite uses the file path",
			config:   DatabaseConfig{Driver: "sqlite", Path: "recipes.sqlite"},
			expected: "recipes.sqlite",
		},
		{
			name:     "empty driver defaults to sqlite",
			config:   DatabaseConfig{Path: "recipes.sqlite"},
			expected: "recipes.sqlite",
		},
		{
			name:     "unknown driver",
			config:   DatabaseConfig{Driver: "oracle"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.DSN(); got != tt.expected {
				t.Errorf("DSN() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestDatabaseConfigStringMasksPassword(t *testing.T) {
	config := DatabaseConfig{Driver: "postgres", Password: "super_secret"}

	if strings.Contains(config.String(), "super_secret") {
		t.Error("String() must not expose the password")
	}
}
