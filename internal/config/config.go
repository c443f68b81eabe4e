package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Feed     FeedConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string
	InternalToken string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type FeedConfig struct {
	SourceURL    string
	FetchTimeout time.Duration
	// TimeZone is the zone zone-less createdAt values are read in.
	TimeZone *time.Location
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

const (
	defaultRedisTTL      = 600 * time.Second
	defaultFetchTimeout  = 5 * time.Second
	defaultMigrationsDir = "migrations"
)

// Enabled reports whether a database host was configured. Without one the
// demand feed is served as unavailable.
func (d DatabaseConfig) Enabled() bool {
	return d.DBHost != ""
}

func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Environment, "development") || strings.EqualFold(a.Environment, "dev")
}

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	seconds := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return time.Duration(v) * time.Second
	}
	location := func(key string) *time.Location {
		raw := opt(key)
		if raw == "" {
			return time.Local
		}
		loc, err := time.LoadLocation(raw)
		if err != nil {
			invalid = append(invalid, key)
			return time.Local
		}
		return loc
	}
	conns := func(key string) int32 {
		raw := opt(key)
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return 0
		}
		return int32(v)
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		MigrationsDir: optDefault("MIGRATIONS_DIR", defaultMigrationsDir),
		InternalToken: opt("INTERNAL_TOKEN"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                optDefault("DB_PORT", "5432"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout:        seconds("DB_CONNECT_TIMEOUT", 0),
		PoolMaxConns:          conns("DB_POOL_MAX_CONNS"),
		PoolMinConns:          conns("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   seconds("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   seconds("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: seconds("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      seconds("REDIS_TTL", defaultRedisTTL),
	}

	cfg.Feed = FeedConfig{
		SourceURL:    opt("DEMAND_SOURCE_URL"),
		FetchTimeout: seconds("DEMAND_FETCH_TIMEOUT", defaultFetchTimeout),
		TimeZone:     location("DEMAND_TIMEZONE"),
	}
	if cfg.Feed.SourceURL == "" && cfg.App.HTTPPort != "" {
		cfg.Feed.SourceURL = "http://127.0.0.1:" + strings.TrimPrefix(cfg.App.HTTPPort, ":")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
