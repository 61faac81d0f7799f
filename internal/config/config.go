package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

type Settings struct {
	Port   string `env:"PORT" envDefault:"8000"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseDSN  string `env:"DATABASE_DSN"`
	StoreBackend string `env:"STORE_BACKEND" envDefault:"postgres"`

	JWTSecret       string        `env:"JWT_SECRET,required,notEmpty"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"5h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`
	CryptoKey       string        `env:"CRYPTO_KEY,required,notEmpty"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:8000/auth/google/callback"`

	FrontendURL  string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,https://localhost:5173,http://localhost:3000"`
	CookieDomain string   `env:"COOKIE_DOMAIN"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	var problems []string

	switch s.StoreBackend {
	case StoreBackendPostgres:
		if s.DatabaseDSN == "" {
			problems = append(problems, "DATABASE_DSN is required when STORE_BACKEND=postgres")
		}
	case StoreBackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid STORE_BACKEND %q: must be postgres or memory", s.StoreBackend))
	}

	if len(s.CryptoKey) != 32 {
		problems = append(problems, "CRYPTO_KEY must be 32 bytes")
	}
	if s.AccessTokenTTL <= 0 || s.RefreshTokenTTL <= 0 {
		problems = append(problems, "token TTLs must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (s *Settings) IsProduction() bool {
	return s.AppEnv == "production"
}

// AllowedOrigins merges the frontend URL into the CORS origin list.
func (s *Settings) AllowedOrigins() []string {
	origins := make([]string, 0, len(s.CORSOrigins)+1)
	seen := make(map[string]bool)
	for _, o := range append(slices.Clone(s.CORSOrigins), s.FrontendURL) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	return origins
}
