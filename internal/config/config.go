package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Catalog        CatalogConfig        `mapstructure:"catalog"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Spotify        SpotifyConfig        `mapstructure:"spotify"`
	Monitoring     MonitoringConfig     `mapstructure:"monitoring"`
	Security       SecurityConfig       `mapstructure:"security"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CatalogConfig selects where songs are loaded from. Path is a CSV file or a
// SQLite database; DSN is a PostgreSQL connection string.
type CatalogConfig struct {
	Source         string        `mapstructure:"source"`
	Path           string        `mapstructure:"path"`
	DSN            string        `mapstructure:"dsn"`
	Table          string        `mapstructure:"table"`
	MinPopularity  int           `mapstructure:"min_popularity"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RecommendationConfig struct {
	DefaultCount int   `mapstructure:"default_count"`
	MaxCount     int   `mapstructure:"max_count"`
	SampleSize   int   `mapstructure:"sample_size"`
	SampleSeed   int64 `mapstructure:"sample_seed"`
	TopGenres    int   `mapstructure:"top_genres"`
}

type SpotifyConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	BaseURL      string        `mapstructure:"base_url"`
	TokenURL     string        `mapstructure:"token_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
	// JWTSecret signs admin tokens. Admin endpoints refuse every request
	// while it is empty.
	JWTSecret string `mapstructure:"jwt_secret"`
}

// MinJWTSecretLength is the shortest accepted HS256 signing secret.
const MinJWTSecretLength = 32

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads configuration from file, or from config/app.yaml and
// ./app.yaml when file is empty. Environment variables override file values.
func LoadFrom(file string) (*Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("app")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Set defaults
	setDefaults(v)

	// Environment variable overrides
	v.SetEnvPrefix("SONGMATCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings that cannot produce a working catalog or live
// lookup.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case "csv", "sqlite":
		if c.Catalog.Path == "" {
			return fmt.Errorf("config: catalog.path is required for source %q", c.Catalog.Source)
		}
	case "postgres":
		if c.Catalog.DSN == "" {
			return errors.New("config: catalog.dsn is required for source \"postgres\"")
		}
	default:
		return fmt.Errorf("config: unknown catalog.source %q", c.Catalog.Source)
	}

	if c.Catalog.MinPopularity < 0 || c.Catalog.MinPopularity > 100 {
		return fmt.Errorf("config: catalog.min_popularity %d outside [0, 100]", c.Catalog.MinPopularity)
	}
	if c.Recommendation.DefaultCount < 1 {
		return errors.New("config: recommendation.default_count must be positive")
	}
	if c.Recommendation.MaxCount < c.Recommendation.DefaultCount {
		return errors.New("config: recommendation.max_count must be at least default_count")
	}

	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("config: security.jwt_secret must be at least %d bytes", MinJWTSecretLength)
	}

	if c.Spotify.Enabled && (c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "") {
		return errors.New("config: spotify.client_id and spotify.client_secret are required when spotify is enabled")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "development")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Catalog defaults
	v.SetDefault("catalog.source", "csv")
	v.SetDefault("catalog.path", "dataset.csv")
	v.SetDefault("catalog.table", "songs")
	v.SetDefault("catalog.min_popularity", 0)
	v.SetDefault("catalog.connect_timeout", "10s")

	// Recommendation defaults
	v.SetDefault("recommendation.default_count", 5)
	v.SetDefault("recommendation.max_count", 100)
	v.SetDefault("recommendation.sample_size", 10)
	v.SetDefault("recommendation.sample_seed", 42)
	v.SetDefault("recommendation.top_genres", 10)

	// Spotify defaults
	v.SetDefault("spotify.enabled", false)
	v.SetDefault("spotify.base_url", "https://api.spotify.com/v1")
	v.SetDefault("spotify.token_url", "https://accounts.spotify.com/api/token")
	v.SetDefault("spotify.timeout", "10s")
	v.SetDefault("spotify.max_retries", 3)
	v.SetDefault("spotify.retry_backoff", "500ms")

	// Monitoring defaults
	v.SetDefault("monitoring.enabled", true)
	v.SetDefault("monitoring.metrics_path", "/metrics")

	// Security defaults
	v.SetDefault("security.cors.allowed_origins", []string{"*"})
	v.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("security.cors.allowed_headers", []string{"*"})
	v.SetDefault("security.jwt_secret", "")
}
