package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the complete service configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Archive ArchiveConfig `toml:"archive"`
	Form    FormConfig    `toml:"form"`
	Seed    SeedConfig    `toml:"seed"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// StorageConfig selects and configures the KV persistence backend.
type StorageConfig struct {
	// Backend is one of "redis", "postgres", "memory".
	Backend       string `toml:"backend"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	DatabaseURL   string `toml:"database_url"`
}

// ArchiveConfig contains object-storage snapshot settings.
type ArchiveConfig struct {
	Enabled   bool   `toml:"enabled"`
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Bucket    string `toml:"bucket"`
}

// FormConfig tunes the add-distributor form behaviour.
type FormConfig struct {
	// ResetDelaySeconds is how long the success message shows before the
	// form clears.
	ResetDelaySeconds int `toml:"reset_delay_seconds"`
}

// SeedConfig describes the record written when no persisted state exists.
type SeedConfig struct {
	FullName string `toml:"full_name"`
	Phone    string `toml:"phone"`
	Username string `toml:"username"`
	Module   string `toml:"module"`
}

// LoadConfig loads configuration from a TOML file.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(filename, config); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return config, nil
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{Backend: "redis", RedisAddr: "localhost:6379"},
		Archive: ArchiveConfig{Endpoint: "localhost:9000", Bucket: "eggmart-archive"},
		Form:    FormConfig{ResetDelaySeconds: 2},
	}
}

// ResetDelay returns the form reset delay as a duration.
func (f FormConfig) ResetDelay() time.Duration {
	return time.Duration(f.ResetDelaySeconds) * time.Second
}
