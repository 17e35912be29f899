// Package config loads runtime settings from the environment (and an optional
// .env file).
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Secrets that ship in examples and must never sign real tokens.
var knownWeakSecrets = []string{
	"secret",
	"changeme",
	"your-secret-key",
	"your_jwt_secret",
}

type Config struct {
	MongoURI      string `env:"MONGODB_URI"`
	DatabaseURL   string `env:"DATABASE_URL"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"greenleaf"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"mongo"`

	JWTSecret    string `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiresIn string `env:"JWT_EXPIRES_IN" envDefault:"24h"`

	Port        int      `env:"PORT" envDefault:"5000"`
	Env         string   `env:"APP_ENV" envDefault:"development"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	RedisURL    string        `env:"REDIS_URL"`
	CachePrefix string        `env:"CACHE_PREFIX" envDefault:"greenleaf:"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT" envDefault:"0.5"` // requests per second per IP
	LoginBurst     int     `env:"LOGIN_BURST" envDefault:"5"`

	TextbeltKey string `env:"TEXTBELT_API_KEY"`
	TextbeltURL string `env:"TEXTBELT_URL" envDefault:"https://textbelt.com/text"`

	Seed              bool   `env:"SEED" envDefault:"false"`
	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL" envDefault:"admin@example.com"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD" envDefault:"password123"`

	tokenTTL time.Duration
}

// Load reads .env if present and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the current environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	for _, weak := range knownWeakSecrets {
		if strings.EqualFold(cfg.JWTSecret, weak) {
			return nil, errors.New("JWT_SECRET is a known placeholder value; set a random secret")
		}
	}

	ttl, err := ParseExpiry(cfg.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	cfg.tokenTTL = ttl

	switch cfg.StorageDriver {
	case DriverMongo:
		if cfg.MongoURL() == "" {
			return nil, errors.New("MONGODB_URI or DATABASE_URL must be set when STORAGE_DRIVER=mongo")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverMongo, DriverMemory, cfg.StorageDriver)
	}

	return cfg, nil
}

// MongoURL returns MONGODB_URI, falling back to DATABASE_URL.
func (c *Config) MongoURL() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	return c.DatabaseURL
}

func (c *Config) TokenTTL() time.Duration {
	return c.tokenTTL
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// ParseExpiry accepts Go durations ("24h", "90m") plus whole days ("7d").
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("expiry must be positive, got %s", s)
	}
	return d, nil
}
