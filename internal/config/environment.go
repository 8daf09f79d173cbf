// Package config provides configuration loading and management for the paste service.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/roguepikachu/pastebin/pkg/logger"
)

// Supported values for Config.StoreBackend.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds environment configuration for the paste service.
type Config struct {
	// Port is the port on which the HTTP server listens.
	Port string `env:"PORT" envDefault:"5000"`
	// StoreBackend selects the paste repository: mongo, postgres, redis or memory.
	StoreBackend string `env:"STORE_BACKEND" envDefault:"mongo"`

	// PasteTTL is how long a paste stays retrievable after creation.
	PasteTTL time.Duration `env:"PASTE_TTL" envDefault:"24h"`
	// MaxContentLength caps paste content, counted in characters.
	MaxContentLength int `env:"MAX_CONTENT_LENGTH" envDefault:"100000"`
	// MaxBodyBytes caps the raw request body accepted by the HTTP layer.
	// Zero derives the cap from MaxContentLength.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"0"`
	IDLength     int   `env:"ID_LENGTH" envDefault:"8"`
	// IDMaxAttempts bounds generate-and-insert attempts on identifier collisions.
	IDMaxAttempts int `env:"ID_MAX_ATTEMPTS" envDefault:"5"`
	// PurgeInterval is the period of the expired-paste purge; zero disables it.
	PurgeInterval time.Duration `env:"PURGE_INTERVAL" envDefault:"1m"`

	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"pastebin"`

	PostgresURL      string `env:"POSTGRES_URL"`
	PostgresHost     string `env:"POSTGRES_HOST"`
	PostgresPort     string `env:"POSTGRES_PORT"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	// CacheEnabled puts a Redis read-through cache in front of mongo or postgres.
	CacheEnabled bool          `env:"CACHE_ENABLED" envDefault:"false"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	// LocalCacheSize enables an in-process LRU of that many pastes; zero disables it.
	LocalCacheSize int `env:"LOCAL_CACHE_SIZE" envDefault:"0"`
}

// bodyOverhead covers the JSON envelope around the content string.
const bodyOverhead = 1024

// MinBodyBytes is the smallest request body that can carry maxChars
// characters. Every UTF-16 code unit may arrive escaped as \uXXXX.
func MinBodyBytes(maxChars int) int64 {
	return 6*int64(maxChars) + bodyOverhead
}

// BodyLimit returns the request body cap in bytes.
func (c Config) BodyLimit() int64 {
	if c.MaxBodyBytes > 0 {
		return c.MaxBodyBytes
	}
	return MinBodyBytes(c.MaxContentLength)
}

// Conf holds the global configuration for the paste service.
var Conf Config

func loadDotEnv() {
	// Does not override variables already present in the environment.
	path := os.Getenv("DOTENV_PATHS")
	if path != "" {
		err := godotenv.Load(strings.Split(path, ",")...)
		if err != nil {
			logger.Fatal(context.Background(), err.Error())
		}
	}
}

// Load parses the environment into a fresh Config and validates it.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendMongo, BackendPostgres, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.PasteTTL <= 0 {
		return fmt.Errorf("PASTE_TTL must be positive, got %s", c.PasteTTL)
	}
	if c.MaxContentLength <= 0 {
		return fmt.Errorf("MAX_CONTENT_LENGTH must be positive, got %d", c.MaxContentLength)
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("MAX_BODY_BYTES must not be negative, got %d", c.MaxBodyBytes)
	}
	if c.MaxBodyBytes > 0 && c.MaxBodyBytes < MinBodyBytes(c.MaxContentLength) {
		return fmt.Errorf("MAX_BODY_BYTES %d cannot carry %d characters, need at least %d",
			c.MaxBodyBytes, c.MaxContentLength, MinBodyBytes(c.MaxContentLength))
	}
	if c.IDMaxAttempts <= 0 {
		return fmt.Errorf("ID_MAX_ATTEMPTS must be positive, got %d", c.IDMaxAttempts)
	}
	if c.LocalCacheSize < 0 {
		return fmt.Errorf("LOCAL_CACHE_SIZE must not be negative, got %d", c.LocalCacheSize)
	}
	return nil
}

// InitConf initializes the global configuration by loading environment variables and .env files.
func InitConf() {
	loadDotEnv()

	c, err := Load()
	if err != nil {
		logger.Fatal(context.Background(), err.Error())
	}
	Conf = c
}
