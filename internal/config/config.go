package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Redis  RedisConfig  `yaml:"redis"`
	Engine EngineConfig `yaml:"engine"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// EngineConfig holds spell engine configuration
type EngineConfig struct {
	// StrictCasts panics when a cast is built without being castable
	// instead of logging and skipping it. Meant for development.
	StrictCasts bool `yaml:"strict_casts"`

	// TurnDuration is how much simulated time passes per resolved turn
	TurnDuration time.Duration `yaml:"turn_duration"`

	// Seed fixes the random source; 0 means seed from the clock
	Seed int64 `yaml:"seed"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Engine: EngineConfig{
			TurnDuration: time.Second,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named
// by SPELLBOOK_CONFIG when set, then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("SPELLBOOK_CONFIG"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Redis.Addr = getEnvOrDefault("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", cfg.Redis.DB)
	cfg.Engine.StrictCasts = getEnvAsBoolOrDefault("ENGINE_STRICT_CASTS", cfg.Engine.StrictCasts)
	cfg.Engine.TurnDuration = getEnvAsDurationOrDefault("ENGINE_TURN_DURATION", cfg.Engine.TurnDuration)
	cfg.Engine.Seed = int64(getEnvAsIntOrDefault("ENGINE_SEED", int(cfg.Engine.Seed)))

	// Validate
	if cfg.Engine.TurnDuration <= 0 {
		return nil, fmt.Errorf("engine turn duration must be positive, got %s", cfg.Engine.TurnDuration)
	}

	return cfg, nil
}

// overlayFile applies a YAML file on top of cfg. A missing file is ignored.
func (cfg *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
