package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Tenancy   TenancyConfig   `toml:"tenancy"`
	Audit     AuditConfig     `toml:"audit"`
	Storage   StorageConfig   `toml:"storage"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port      int    `toml:"port"`
	JWTSecret string `toml:"jwt_secret"`
}

// DatabaseConfig contains PostgreSQL settings
type DatabaseConfig struct {
	URL string `toml:"url"`
}

// RedisConfig contains Redis cache settings
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// TenancyConfig contains tenant resolution settings
type TenancyConfig struct {
	BaseDomain      string `toml:"base_domain"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
}

// AuditConfig contains audit log retention settings
type AuditConfig struct {
	RetentionDays int `toml:"retention_days"`
}

// StorageConfig contains MinIO object storage settings
type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
}

// LoadFile loads configuration from a TOML file
func LoadFile(filename string) (*Config, error) {
	config := &Config{}
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	config.applyDefaults()
	return config, nil
}

// Load builds configuration from environment variables, falling back to
// a TOML file when CONFIG_FILE is set. Environment variables win.
func Load() (*Config, error) {
	config := &Config{}

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		loaded, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Server.JWTSecret = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		config.Server.Port = port
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		config.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			config.Redis.DB = db
		}
	}
	if v := os.Getenv("BASE_DOMAIN"); v != "" {
		config.Tenancy.BaseDomain = v
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			config.Tenancy.CacheTTLSeconds = ttl
		}
	}
	if v := os.Getenv("AUDIT_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			config.Audit.RetentionDays = days
		}
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		config.Storage.Endpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		config.Storage.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		config.Storage.SecretKey = v
	}
	if os.Getenv("MINIO_USE_SSL") == "true" {
		config.Storage.UseSSL = true
	}

	config.applyDefaults()

	if config.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Tenancy.BaseDomain == "" {
		c.Tenancy.BaseDomain = "roomly.app"
	}
	if c.Tenancy.CacheTTLSeconds == 0 {
		c.Tenancy.CacheTTLSeconds = 300
	}
	if c.Audit.RetentionDays == 0 {
		c.Audit.RetentionDays = 90
	}
	if c.Storage.Endpoint == "" {
		c.Storage.Endpoint = "localhost:9000"
	}
	if c.Storage.AccessKey == "" {
		c.Storage.AccessKey = "minioadmin"
	}
	if c.Storage.SecretKey == "" {
		c.Storage.SecretKey = "minioadmin"
	}
}

// CacheTTL returns the tenant cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Tenancy.CacheTTLSeconds) * time.Second
}
