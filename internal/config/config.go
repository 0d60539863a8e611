package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Advisor AdvisorConfig `mapstructure:"advisor"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
	// CORSAllowedOrigins is a comma-separated list of origins.
	// Empty allows all origins.
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
}

// StorageConfig holds key-value storage configuration. An empty Dir
// selects the in-memory store.
type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

// AdvisorConfig holds insight pipeline tunables
type AdvisorConfig struct {
	// CooldownHours is how long a template rests after being shown
	CooldownHours int `mapstructure:"cooldown_hours"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Cooldown returns the template cooldown as a duration
func (c AdvisorConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownHours) * time.Hour
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_allowed_origins", "")
	v.SetDefault("storage.dir", "")
	v.SetDefault("advisor.cooldown_hours", 72)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix("MOODLOOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed variables common on hosting platforms
	v.BindEnv("server.port", "PORT")
	v.BindEnv("storage.dir", "DATA_DIR")
	v.BindEnv("server.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if the config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that configuration values are usable
func (c *Config) Validate() error {
	if c.Advisor.CooldownHours <= 0 {
		return fmt.Errorf("advisor.cooldown_hours must be positive")
	}
	return nil
}
