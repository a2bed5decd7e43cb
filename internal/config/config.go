package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Ollama struct {
		URL         string  `yaml:"url" env:"OLLAMA_URL"`
		Model       string  `yaml:"model" env:"OLLAMA_MODEL"`
		Timeout     string  `yaml:"timeout" env:"OLLAMA_TIMEOUT"`
		Temperature float64 `yaml:"temperature" env:"OLLAMA_TEMPERATURE"`
	} `yaml:"ollama"`

	Session struct {
		Secret string `yaml:"secret" env:"SESSION_SECRET"`
		TTL    string `yaml:"ttl" env:"SESSION_TTL"`
		Issuer string `yaml:"issuer" env:"SESSION_ISSUER"`
	} `yaml:"session"`

	Advising struct {
		SurfaceUnmatched    bool   `yaml:"surface_unmatched" env:"ADVISING_SURFACE_UNMATCHED"`
		CourseDataPath      string `yaml:"course_data" env:"ADVISING_COURSE_DATA"`
		RequirementDataPath string `yaml:"requirement_data" env:"ADVISING_REQUIREMENT_DATA"`
	} `yaml:"advising"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "lecourse"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// Ollama defaults match a local model server
	config.Ollama.URL = "http://localhost:11434"
	config.Ollama.Model = "phi3:mini"
	config.Ollama.Timeout = "120s"
	config.Ollama.Temperature = 0.1

	// Session defaults
	config.Session.TTL = "12h"
	config.Session.Issuer = "lecourse.app"

	// Advising defaults
	config.Advising.SurfaceUnmatched = true
	config.Advising.CourseDataPath = "data/courseData.csv"
	config.Advising.RequirementDataPath = "data/majorRequirements.csv"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Ollama.URL == "" {
		return fmt.Errorf("ollama url is required")
	}

	if config.Ollama.Model == "" {
		return fmt.Errorf("ollama model is required")
	}

	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}

	if _, err := time.ParseDuration(config.Ollama.Timeout); err != nil {
		return fmt.Errorf("invalid ollama timeout format: %w", err)
	}

	if _, err := time.ParseDuration(config.Session.TTL); err != nil {
		return fmt.Errorf("invalid session TTL format: %w", err)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
