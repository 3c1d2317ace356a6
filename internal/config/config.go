// Package config loads the process configuration.
//
// Values are layered, lowest precedence first:
//  1. defaults (Default)
//  2. an optional YAML file named by TACOMEMO_CONFIG
//  3. environment variables prefixed with TACOMEMO_ (a `.env` file is
//     autoloaded into the environment first)
//
// Nested keys are separated by a double underscore in the environment:
//
//	TACOMEMO_EMAIL__API_KEY        -> email.api_key
//	TACOMEMO_SERVER__PORT          -> server.port
//	TACOMEMO_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
//
// The result is validated with go-playground/validator so the process fails
// fast on missing credentials.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Loads a `.env` file into the process environment, if present.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "TACOMEMO_"
	envConfigFile = "TACOMEMO_CONFIG"
	serviceName   = "tacomemo"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; defaults are injected
// when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Upload        UploadConfig         `koanf:"upload" validate:"required"`
	Client        ClientConfig         `koanf:"client" validate:"required"`
	Catalog       CatalogConfig        `koanf:"catalog" validate:"required"`
	Email         EmailConfig          `koanf:"email" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig points at the SQLite file holding the carousel images.
type DatabaseConfig struct {
	Path         string `koanf:"path" validate:"required"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"min=1"`
}

// UploadConfig controls where uploaded carousel images are written.
//
// MaxSize uses echo's BodyLimit syntax ("20M", "512K").
type UploadConfig struct {
	Dir     string `koanf:"dir" validate:"required"`
	MaxSize string `koanf:"max_size" validate:"required"`
}

// ClientConfig locates the built React application.
//
// BuildDir holds index.html and the bundle; PublicDir holds extra static
// assets served at the site root.
type ClientConfig struct {
	BuildDir  string `koanf:"build_dir" validate:"required"`
	PublicDir string `koanf:"public_dir"`
}

// CatalogConfig configures the upstream restaurant catalog API.
type CatalogConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`
}

// EmailConfig configures the contact form relay.
//
// From and To are fixed: the submitter's address only ever appears in the
// message body.
type EmailConfig struct {
	APIKey string `koanf:"api_key" validate:"required"`
	From   string `koanf:"from" validate:"required"`
	To     string `koanf:"to" validate:"required"`
}

// Default returns the configuration used before any file or environment
// values are applied.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "5000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			ShutdownTimeout:    30,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Path:         "carousel_images.db",
			MaxOpenConns: 4,
		},
		Upload: UploadConfig{
			Dir:     "public/uploads",
			MaxSize: "20M",
		},
		Client: ClientConfig{
			BuildDir:  "../client/build",
			PublicDir: "public",
		},
		Catalog: CatalogConfig{
			BaseURL: "https://api.zelty.fr/2.7",
			Timeout: 30 * time.Second,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig builds, validates and returns the application configuration.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrLoadConfig, path, err)
		}
	}

	// TACOMEMO_EMAIL__API_KEY -> email.api_key
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: read environment: %w", ErrLoadConfig, err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrLoadConfig, err)
	}

	// Hosting platforms usually hand the listen port over as plain PORT.
	if port := os.Getenv("PORT"); port != "" && !k.Exists("server.port") {
		cfg.Server.Port = port
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}
	cfg.Observability.ServiceName = serviceName
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks struct tags and the observability rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// IsProduction reports whether the process runs with primary.env=production.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
