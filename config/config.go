package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Environment string `yaml:"environment"`
	ServerPort  int    `yaml:"server_port"`
	DBPath      string `yaml:"db_path"`

	// Storage paths
	StoragePath string `yaml:"storage_path"`
	CachePath   string `yaml:"cache_path"`
	SchemaPath  string `yaml:"schema_path"`

	// Transcription settings
	WhisperModel string `yaml:"whisper_model"`

	// Choreography AI settings
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	AnthropicModel  string `yaml:"anthropic_model"`

	// Admin auth
	AdminPassword string `yaml:"admin_password"`
}

// LoadConfig loads configuration from defaults, an optional YAML file,
// and environment variables, in that order of precedence.
func LoadConfig() *Config {
	// .env is optional, used in development
	godotenv.Load()

	env := os.Getenv("DANCE_CARD_ENV")
	if env == "" {
		env = "development"
	}

	cfg := Config{
		Environment:  env,
		ServerPort:   8080,
		WhisperModel: "base",
	}

	if env == "production" {
		cfg.DBPath = "/var/lib/dancecard/data/dancecard.db"
		cfg.StoragePath = "/var/lib/dancecard/storage"
	} else {
		homeDir, _ := os.UserHomeDir()
		basePath := filepath.Join(homeDir, "dancecard")
		cfg.DBPath = filepath.Join(basePath, "data", "dancecard.db")
		cfg.StoragePath = filepath.Join(basePath, "storage")
	}

	if path := os.Getenv("DANCE_CARD_CONFIG"); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			fmt.Printf("Warning: could not load config file %s: %v\n", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	// Derived paths
	if cfg.CachePath == "" {
		cfg.CachePath = filepath.Join(cfg.StoragePath, "cache")
	}
	if cfg.SchemaPath == "" {
		cfg.SchemaPath = "scripts/schema.sql"
	}
	if cfg.AnthropicModel == "" {
		cfg.AnthropicModel = "claude-sonnet-4-20250514"
	}

	fmt.Printf("Loaded configuration for environment: %s\n", env)
	return &cfg
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DANCE_CARD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.ServerPort = port
		}
	}
	if v := os.Getenv("DANCE_CARD_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DANCE_CARD_STORAGE_PATH"); v != "" {
		cfg.StoragePath = v
	}
	if v := os.Getenv("WHISPER_MODEL"); v != "" {
		cfg.WhisperModel = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := os.Getenv("ANTHROPIC_MODEL"); v != "" {
		cfg.AnthropicModel = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}
}
