package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // pricing.location must resolve on hosts without a zoneinfo database

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

var ErrRedisAddressRequired = errors.New("cache.redis.address is required for the redis backend")

type Config struct {
	Env string `yaml:"env"`

	Server struct {
		Host                     string `yaml:"host"`
		Port                     string `yaml:"port"`
		ReadHeaderTimeoutSeconds int    `yaml:"read_header_timeout_seconds"`
		ShutdownTimeoutSeconds   int    `yaml:"shutdown_timeout_seconds"`
		LivenessEndpoint         string `yaml:"liveness_endpoint"`
	} `yaml:"server"`

	Log struct {
		Level   string `yaml:"level"`
		Console bool   `yaml:"console"`
	} `yaml:"log"`

	Pricing struct {
		Location     string `yaml:"location"`
		SchedulePath string `yaml:"schedule_path"`
	} `yaml:"pricing"`

	Extras struct {
		ExtraBedPerNight int `yaml:"extra_bed_per_night"`
	} `yaml:"extras"`

	Cache struct {
		Backend    string `yaml:"backend"` // "", "memory" or "redis"
		TTLSeconds int    `yaml:"ttl_seconds"`
		Redis      struct {
			Address  string `yaml:"address"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	RateLimit struct {
		RequestsPerMinute int  `yaml:"requests_per_minute"`
		Burst             int  `yaml:"burst"`
		TrustForwarded    bool `yaml:"trust_forwarded"` // key clients by X-Forwarded-For; only behind a proxy
	} `yaml:"rate_limit"`

	Monitoring struct {
		PrometheusEnabled bool   `yaml:"prometheus_enabled"`
		MetricsEndpoint   string `yaml:"metrics_endpoint"`
	} `yaml:"monitoring"`

	Site struct {
		Name        string `yaml:"name"`
		Phone       string `yaml:"phone"`
		WhatsAppURL string `yaml:"whatsapp_url"`
	} `yaml:"site"`
}

// LoadEnv reads a .env file outside production. A missing file is not an error.
func LoadEnv(path string) error {
	if os.Getenv("ENV") == "production" {
		return nil
	}

	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); err != nil {
		return nil //nolint:nilerr // optional file
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	return nil
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config, expanding ${ENV_VAR} placeholders first.
func Parse(data []byte) (*Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}

	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}

	if c.Server.Port == "" {
		c.Server.Port = "8092"
	}

	if c.Server.ReadHeaderTimeoutSeconds <= 0 {
		c.Server.ReadHeaderTimeoutSeconds = 20
	}

	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = 4
	}

	if c.Server.LivenessEndpoint == "" {
		c.Server.LivenessEndpoint = "/liveness"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Pricing.Location == "" {
		c.Pricing.Location = "Asia/Kolkata"
	}

	if c.Extras.ExtraBedPerNight <= 0 {
		c.Extras.ExtraBedPerNight = 600
	}

	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = 300
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		c.RateLimit.RequestsPerMinute = 120
	}

	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 20
	}

	if c.Monitoring.MetricsEndpoint == "" {
		c.Monitoring.MetricsEndpoint = "/metrics"
	}

	if c.Site.Name == "" {
		c.Site.Name = "Ecoescape Mukteshwar"
	}

	if c.Site.WhatsAppURL == "" {
		c.Site.WhatsAppURL = "https://wa.me/919667846787"
	}
}

func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Pricing.Location); err != nil {
		return fmt.Errorf("pricing.location: %w", err)
	}

	switch c.Cache.Backend {
	case "", "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return ErrRedisAddressRequired
		}
	default:
		return fmt.Errorf("cache.backend: unknown backend '%s'", c.Cache.Backend)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Pricing.Location)
	if err != nil {
		return time.UTC
	}

	return loc
}

func (c *Config) ReadHeaderTimeout() time.Duration {
	return time.Duration(c.Server.ReadHeaderTimeoutSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
