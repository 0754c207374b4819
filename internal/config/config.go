package config

import (
	"errors"
	"fmt"
	"os"

	"homefix/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Backend    BackendConfig    `yaml:"backend"`
	Cache      CacheConfig      `yaml:"cache"`
	API        APIConfig        `yaml:"api"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Exports    ExportConfig     `yaml:"exports"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// BackendConfig points at the backend-as-a-service that owns persistence
// and authentication.
type BackendConfig struct {
	BaseURL        string           `yaml:"base_url"`
	APIKey         string           `yaml:"api_key"`
	TimeoutSeconds int              `yaml:"timeout_seconds"`
	RateLimit      BackendRateLimit `yaml:"rate_limit"`
}

type BackendRateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// CacheConfig selects the local booking cache backend. Redis and SQLite are
// always backed by an in-memory fallback at runtime.
type CacheConfig struct {
	Backend string       `yaml:"backend"` // redis, sqlite or memory
	Redis   RedisConfig  `yaml:"redis"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type APIConfig struct {
	Port int `yaml:"port"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; environment wins either way.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend base_url is required")
	}

	switch c.Cache.Backend {
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("cache.redis.address is required for the redis backend")
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return errors.New("cache.sqlite.path is required for the sqlite backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown cache backend: %q", c.Cache.Backend)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "homefix"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "sqlite"
	}
	if c.Cache.SQLite.Path == "" && c.Cache.Backend == "sqlite" {
		c.Cache.SQLite.Path = "data/cache.db"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = models.DefaultBackendTimeout
	}
	if c.Backend.RateLimit.RPS == 0 {
		c.Backend.RateLimit.RPS = models.DefaultBackendRPS
	}
	if c.Backend.RateLimit.Burst == 0 {
		c.Backend.RateLimit.Burst = models.DefaultBackendBurst
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}
