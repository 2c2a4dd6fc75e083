package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config is the environment of the storefront command-line client.
type Config struct {
	APIBaseURL  string        `env:"API_BASE_URL, default=http://localhost:5002"`
	LogLevel    string        `env:"LOG_LEVEL,    default=warn"`
	LogPretty   bool          `env:"LOG_PRETTY,   default=true"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=30s"`

	Credentials CredentialConfig
}

// CredentialConfig selects and configures the credential store backend.
type CredentialConfig struct {
	Backend     string `env:"CREDENTIAL_STORE,        default=file"`
	Path        string `env:"CREDENTIAL_PATH"`
	RedisAddr   string `env:"CREDENTIAL_REDIS_ADDR,   default=localhost:6379"`
	RedisDB     int    `env:"CREDENTIAL_REDIS_DB,     default=0"`
	RedisPrefix string `env:"CREDENTIAL_REDIS_PREFIX, default=storefront"`
}

// MockConfig is the environment of the catalog contract fake.
type MockConfig struct {
	Port        string        `env:"PORT,         default=5002"`
	JWTSecret   string        `env:"JWT_SECRET,   default=dev-secret"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
	AdminSecret string        `env:"ADMIN_SECRET"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	LogPretty   bool          `env:"LOG_PRETTY,   default=false"`
}

// Load reads the client configuration from the environment, after merging a
// .env file from the working directory when one exists.
func Load(ctx context.Context) (*Config, error) {
	loadDotEnv()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// LoadMock reads the contract fake configuration.
func LoadMock(ctx context.Context) (*MockConfig, error) {
	loadDotEnv()

	var cfg MockConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// loadDotEnv never overrides variables already present in the environment. A
// missing file is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
}
