package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"OptionsPull/pkg/logger"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"5m"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Logger       logger.Config `yaml:"logger"`
	AlphaVantage struct {
		APIKey      string        `yaml:"api_key" validate:"required"`
		BaseURL     string        `yaml:"base_url" default:"https://www.alphavantage.co" validate:"required,url"`
		Timeout     time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
		Concurrency int           `yaml:"concurrency" default:"1" validate:"gte=1,lte=32"`
		// MaxWeekdays caps one options request; 0 disables the cap.
		MaxWeekdays int `yaml:"max_weekdays" default:"1300" validate:"gte=0"`
	} `yaml:"alpha_vantage"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b, nil)
}

// Parse decodes YAML, applies defaults and env overrides, then validates.
// A nil getenv disables env overrides.
func Parse(b []byte, getenv func(string) string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if getenv != nil {
		if err := c.applyEnv(getenv); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads .env (if present), the YAML file, and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b, os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		c.AlphaVantage.APIKey = v
	}
	if v := getenv("ALPHAVANTAGE_BASE_URL"); v != "" {
		c.AlphaVantage.BaseURL = v
	}
	if v := getenv("ALPHAVANTAGE_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ALPHAVANTAGE_CONCURRENCY: %w", err)
		}
		c.AlphaVantage.Concurrency = n
	}
	if v := getenv("ALPHAVANTAGE_MAX_WEEKDAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ALPHAVANTAGE_MAX_WEEKDAYS: %w", err)
		}
		c.AlphaVantage.MaxWeekdays = n
	}
	if v := getenv("HTTP_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.Server.Port = n
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	return validate.Struct(c)
}
