package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// DatabaseConfig holds database configuration. Driver is either "sqlite"
// (Path points at the database file) or "postgres" (DSN is a pgx-style
// connection string).
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

// StorageConfig holds photo blob storage configuration. Type is either
// "disk" (Dir is the photo directory) or "s3".
type StorageConfig struct {
	Type string   `yaml:"type"`
	Dir  string   `yaml:"dir"`
	S3   S3Config `yaml:"s3"`
}

// S3Config holds S3 blob storage configuration
type S3Config struct {
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"` // custom endpoint for S3-compatible stores
	Prefix    string `yaml:"prefix"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 5000},
		Database: DatabaseConfig{Driver: "sqlite", Path: "data/weight_tracker.db"},
		Storage:  StorageConfig{Type: "disk", Dir: "data/photos"},
		Log:      LogConfig{Level: "info"},
	}
}
