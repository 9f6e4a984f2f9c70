package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIRoot            string        `mapstructure:"api_root"`
	AuthHeader         string        `mapstructure:"auth_header"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	CredentialsStore string `mapstructure:"credentials_store"`
	CredentialsPath  string `mapstructure:"credentials_path"`

	PublishersFile string `mapstructure:"publishers_file"`

	CacheType            string        `mapstructure:"cache_type"`
	CachePath            string        `mapstructure:"cache_path"`
	CacheTTLSeconds      int64         `mapstructure:"cache_ttl_seconds"`
	CacheCleanupSeconds  int64         `mapstructure:"cache_cleanup_interval_seconds"`
	CacheTTL             time.Duration `mapstructure:"-"`
	CacheCleanupInterval time.Duration `mapstructure:"-"`

	BatchConcurrency int `mapstructure:"batch_concurrency"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "emotion-sdk")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_root", "https://westus.api.cognitive.microsoft.com/face/v1.0")
	v.SetDefault("auth_header", "Ocp-Apim-Subscription-Key")
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("credentials_store", "file")
	v.SetDefault("credentials_path", "")
	v.SetDefault("publishers_file", "")
	v.SetDefault("cache_type", "none")
	v.SetDefault("cache_path", "./data/recognitions.db")
	v.SetDefault("cache_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("cache_cleanup_interval_seconds", int64((6*time.Hour)/time.Second))
	v.SetDefault("batch_concurrency", 4)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIRoot = strings.TrimRight(strings.TrimSpace(cfg.APIRoot), "/")
	if cfg.APIRoot == "" {
		return nil, fmt.Errorf("invalid api_root (must not be empty)")
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.CacheTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_ttl_seconds (must be positive seconds)")
	}
	if cfg.CacheCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.CacheTTL = time.Duration(cfg.CacheTTLSeconds) * time.Second
	cfg.CacheCleanupInterval = time.Duration(cfg.CacheCleanupSeconds) * time.Second

	if cfg.BatchConcurrency <= 0 {
		return nil, fmt.Errorf("invalid batch_concurrency (must be positive)")
	}

	return &cfg, nil
}
