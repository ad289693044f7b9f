package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT, default=4000"`
	Env        string `env:"ENV, default=development"`
	CORSOrigin string `env:"CORS_ORIGIN, default=*"`

	Log      LogConfig
	JWT      JWTConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Archive  ArchiveConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL, default=info"`
	Pretty bool   `env:"LOG_PRETTY, default=false"`
	Dir    string `env:"LOG_DIR, default=logs"`
}

type JWTConfig struct {
	Secret    string        `env:"JWT_SECRET"`
	ExpiresIn time.Duration `env:"JWT_EXPIRES_IN, default=1000s"`
}

// PostgresConfig accepts either a full DATABASE_URL or the individual DB_*
// variables. DATABASE_URL wins when both are set.
type PostgresConfig struct {
	URL         string        `env:"DATABASE_URL"`
	Host        string        `env:"DB_HOST, default=localhost"`
	Port        string        `env:"DB_PORT, default=5432"`
	Username    string        `env:"DB_USERNAME, default=postgres"`
	Password    string        `env:"DB_PASSWORD"`
	Name        string        `env:"DB_NAME, default=engnet"`
	SSLMode     string        `env:"DB_SSLMODE, default=disable"`
	MaxOpen     int           `env:"DB_MAX_OPEN, default=25"`
	MaxIdle     int           `env:"DB_MAX_IDLE, default=25"`
	MaxLifetime time.Duration `env:"DB_MAX_LIFETIME, default=5m"`
}

type MongoConfig struct {
	Enabled  bool   `env:"AUDIT_ENABLED, default=true"`
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB, default=backoffice_audit"`
	Workers  int    `env:"AUDIT_WORKERS, default=4"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REVOCATION_ENABLED, default=true"`
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type ArchiveConfig struct {
	Enabled   bool   `env:"ARCHIVE_ENABLED, default=false"`
	Endpoint  string `env:"ARCHIVE_ENDPOINT, default=localhost:9000"`
	AccessKey string `env:"ARCHIVE_ACCESS_KEY"`
	SecretKey string `env:"ARCHIVE_SECRET_KEY"`
	Bucket    string `env:"ARCHIVE_BUCKET, default=reports"`
	UseSSL    bool   `env:"ARCHIVE_USE_SSL, default=false"`
}

// DSN returns DATABASE_URL or a postgres:// URL built from the DB_* parts.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.Username, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.Name,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

// CORSOrigins splits CORS_ORIGIN on commas. "*" allows every origin.
func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.ExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
