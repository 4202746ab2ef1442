// Package config loads server configuration from a YAML file, falling back to
// development defaults when the file is absent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`

	Database Database `yaml:"database"`

	// RedisURL enables the login rate limiter when set.
	RedisURL string `yaml:"redis_url"`

	JWTSecret      string `yaml:"jwt_secret"`
	JWTExpiryHours int    `yaml:"jwt_expiry_hours"`

	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Database holds the MySQL connection settings.
type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// DSN renders the gorm MySQL connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name, d.Charset)
}

// Default returns the development configuration.
func Default() *Config {
	return &Config{
		Port: 3000,
		Env:  "development",
		Database: Database{
			Host:    "127.0.0.1",
			Port:    3306,
			User:    "root",
			Name:    "cms",
			Charset: "utf8mb4",
		},
		JWTSecret:      "dev-secret-change-me",
		JWTExpiryHours: 168,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
}

// Load reads path and merges it over the defaults. A missing file is not an
// error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.JWTExpiryHours <= 0 {
		cfg.JWTExpiryHours = 168
	}
	return cfg, nil
}

// IsDev reports whether the server runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env != "production"
}
