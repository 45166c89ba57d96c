package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	defaultPort        = "5000"
	defaultCluster     = "cluster0.ocrjv.mongodb.net"
	defaultDatabase    = "yooda-hostel"
	defaultEventsTopic = "record-events"
	defaultRoleTTL     = 5 * time.Minute
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level
	StoreDriver string

	Mongo MongoConfig

	RedisURL     string
	RoleCacheTTL time.Duration

	KafkaBrokers []string
	EventsTopic  string
}

type MongoConfig struct {
	URI      string
	User     string
	Password string
	Cluster  string
	Database string
}

// ConnectionURI returns MONGODB_URI when set, otherwise the Atlas SRV URI
// assembled from the credentials.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/myFirstDatabase?retryWrites=true&w=majority",
		url.QueryEscape(m.User), url.QueryEscape(m.Password), m.Cluster)
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", defaultPort),
		Environment: getEnv("ENVIRONMENT", "development"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMongo)),
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGODB_URI"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
			Cluster:  getEnv("DB_CLUSTER", defaultCluster),
			Database: getEnv("DB_NAME", defaultDatabase),
		},
		RedisURL:    os.Getenv("REDIS_URL"),
		EventsTopic: getEnv("EVENTS_TOPIC", defaultEventsTopic),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	ttl, err := time.ParseDuration(getEnv("ROLE_CACHE_TTL", defaultRoleTTL.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid ROLE_CACHE_TTL: %w", err)
	}
	cfg.RoleCacheTTL = ttl

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverMemory:
		return nil
	case StoreDriverMongo:
		if c.Mongo.URI == "" && (c.Mongo.User == "" || c.Mongo.Password == "") {
			return errors.New("mongo store requires MONGODB_URI or DB_USER and DB_PASS")
		}
		return nil
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
