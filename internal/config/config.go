package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"jobmatch/internal/observability"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultMongoURI  = "mongodb://localhost:27017/jobmatch"
	DefaultDatabase  = "jobmatch"
	DefaultJWTExpire = "30d"
)

// DefaultCORSOrigins are the local frontend dev servers.
var DefaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

var ErrInvalidExpiry = errors.New("invalid expiry")

// Config holds all application configuration
type Config struct {
	Environment string `env:"NODE_ENV" envDefault:"development"`

	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Uploads  UploadConfig
	Redis    RedisConfig
	Mail     MailConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int `env:"PORT" envDefault:"5000"`
	// TrustedProxies lists the proxy CIDRs whose X-Forwarded-For is believed.
	// Empty trusts none, so the peer address is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	// ClientIPHeader names an edge header, e.g. CloudFront-Viewer-Address,
	// that carries the viewer address. Empty disables it.
	ClientIPHeader string `env:"TRUSTED_PROXY_HEADER"`
}

// DatabaseConfig holds document store connection settings
type DatabaseConfig struct {
	URI                    string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017/jobmatch"`
	Name                   string        `env:"MONGODB_DATABASE"`
	ServerSelectionTimeout time.Duration `env:"MONGODB_SERVER_SELECTION_TIMEOUT" envDefault:"10s"`
	SocketTimeout          time.Duration `env:"MONGODB_SOCKET_TIMEOUT" envDefault:"45s"`
	MaxPoolSize            uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"10"`
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
	JWTExpire string `env:"JWT_EXPIRE" envDefault:"30d"`
	// RateLimitPerMinute bounds requests per client IP on the auth routes.
	RateLimitPerMinute int `env:"AUTH_RATE_LIMIT" envDefault:"20"`
}

// CORSConfig holds the origin allow-list
type CORSConfig struct {
	AllowOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000,http://localhost:5173" envSeparator:","`
}

// UploadConfig holds the local upload directory served under /uploads
type UploadConfig struct {
	Dir string `env:"UPLOAD_DIR" envDefault:"uploads"`
}

// RedisConfig holds the optional rate limit cache settings
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Enabled reports whether a redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// MailConfig holds the optional transactional email settings
type MailConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	From         string `env:"EMAIL_FROM" envDefault:"Jobmatch <noreply@jobmatch.dev>"`
}

// Enabled reports whether application emails can be sent.
func (m MailConfig) Enabled() bool {
	return m.ResendAPIKey != ""
}

// Load reads the environment (and a .env file if one exists), applies defaults
// and logs which required settings were found. Missing settings are never fatal.
func Load(ctx context.Context, logger *observability.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn(ctx, "failed to load .env file", observability.Field{Key: "error", Value: err.Error()})
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	reportRequired(ctx, logger, "JWT_SECRET")
	reportRequired(ctx, logger, "MONGODB_URI")

	if _, err := ParseExpiry(cfg.Auth.JWTExpire); err != nil {
		logger.Warn(ctx, "invalid JWT_EXPIRE, falling back to default",
			observability.Field{Key: "value", Value: cfg.Auth.JWTExpire},
			observability.Field{Key: "default", Value: DefaultJWTExpire},
		)
		cfg.Auth.JWTExpire = DefaultJWTExpire
	}

	if cfg.Database.Name == "" {
		cfg.Database.Name = DatabaseNameFromURI(cfg.Database.URI)
	}

	return cfg, nil
}

// reportRequired logs presence or absence of a required key.
func reportRequired(ctx context.Context, logger *observability.Logger, key string) {
	if os.Getenv(key) == "" {
		logger.Warn(ctx, "required environment variable is not set, using default",
			observability.Field{Key: "key", Value: key})
		return
	}
	logger.Info(ctx, "environment variable loaded", observability.Field{Key: "key", Value: key})
}

// IsProduction reports whether NODE_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// JWTExpiry returns the resolved token lifetime.
func (c *Config) JWTExpiry() time.Duration {
	d, err := ParseExpiry(c.Auth.JWTExpire)
	if err != nil {
		d, _ = ParseExpiry(DefaultJWTExpire)
	}
	return d
}

// ParseExpiry parses Go durations plus a day suffix ("30d").
func ParseExpiry(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty value: %w", ErrInvalidExpiry)
	}
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%q: %w", value, ErrInvalidExpiry)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidExpiry)
	}
	return d, nil
}

// DatabaseNameFromURI returns the database named in the URI path, or the default.
func DatabaseNameFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return DefaultDatabase
	}
	name := strings.Trim(u.Path, "/")
	if name == "" {
		return DefaultDatabase
	}
	return name
}
