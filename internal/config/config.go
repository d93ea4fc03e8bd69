package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/spamshield/")
	v.AddConfigPath("$HOME/.spamshield")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("SPAMSHIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.mode", "http")
	v.SetDefault("server.http.listen_address", "0.0.0.0:8080")
	v.SetDefault("server.smtp.listen_address", "0.0.0.0:10025")
	v.SetDefault("server.smtp.upstream_address", "127.0.0.1:10026")
	v.SetDefault("server.smtp.block_spam", false)
	v.SetDefault("server.smtp.rewrite_subject", true)
	v.SetDefault("server.smtp.subject_prefix", "[SPAM] ")
	v.SetDefault("server.smtp.headers.flag", "X-SpamShield-Flag")
	v.SetDefault("server.smtp.headers.score", "X-SpamShield-Score")
	v.SetDefault("server.smtp.headers.category", "X-SpamShield-Category")
	v.SetDefault("server.smtp.headers.reasons", "X-SpamShield-Reasons")
	v.SetDefault("server.smtp.whitelisted_domains", []string{})

	// API defaults
	v.SetDefault("api.min_text_length", 1)
	v.SetDefault("api.max_text_length", 32768)

	// Engine defaults
	v.SetDefault("engine.score_cap", 3)
	v.SetDefault("engine.normalization_k", 1.5)
	v.SetDefault("engine.max_reasons", 5)
	v.SetDefault("engine.mitigation", true)
	v.SetDefault("engine.thresholds.low", 0.2)
	v.SetDefault("engine.thresholds.medium", 0.4)
	v.SetDefault("engine.thresholds.high", 0.7)
	v.SetDefault("engine.structural.caps_ratio", 0.5)
	v.SetDefault("engine.structural.caps_min_length", 20)
	v.SetDefault("engine.structural.max_exclamations", 3)
	v.SetDefault("engine.structural.max_links", 2)
	v.SetDefault("engine.structural.max_numbers", 5)
	v.SetDefault("engine.structural.max_contacts", 1)
	v.SetDefault("engine.structural.short_text_length", 10)
	v.SetDefault("engine.structural.long_text_length", 1000)

	// Catalog defaults
	v.SetDefault("catalog.path", "")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "/data/spamshield_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/spamshield")
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.redis_key_prefix", "spamshield:verdict:")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
