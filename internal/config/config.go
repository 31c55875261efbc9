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
	AccountID             string `mapstructure:"bigstock_account_id"`
	SecretKey             string `mapstructure:"bigstock_secret_key"`
	Mode                  string `mapstructure:"bigstock_mode"`
	BaseURLTemplate       string `mapstructure:"bigstock_base_url"`
	TimeoutMs             int64  `mapstructure:"bigstock_timeout_ms"`
	UserAgent             string `mapstructure:"bigstock_user_agent"`
	LogLevel              string `mapstructure:"log_level"`
	OutputDir             string `mapstructure:"output_dir"`
	PublishersFile        string `mapstructure:"publishers_file"`
	StorageType           string `mapstructure:"storage_type"`
	BBoltPath             string `mapstructure:"bbolt_path"`
	StorageTTLSeconds     int64  `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds int64  `mapstructure:"storage_cleanup_interval_seconds"`

	Timeout                time.Duration `mapstructure:"-"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// String keeps the secret out of logs.
func (c Config) String() string {
	return fmt.Sprintf("account=%s mode=%s base=%s timeout=%s storage=%s output=%s",
		c.AccountID, c.Mode, c.BaseURLTemplate, c.Timeout, c.StorageType, c.OutputDir)
}

// Summary returns a loggable view of the configuration without credentials.
func (c Config) Summary() map[string]any {
	return map[string]any{
		"account_id":      c.AccountID,
		"mode":            c.Mode,
		"base_url":        c.BaseURLTemplate,
		"timeout_ms":      c.Timeout.Milliseconds(),
		"log_level":       c.LogLevel,
		"output_dir":      c.OutputDir,
		"publishers_file": c.PublishersFile,
		"storage_type":    c.StorageType,
		"bbolt_path":      c.BBoltPath,
	}
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()
	setDefaults(v)
	for _, key := range keys {
		// keys without a default are invisible to Unmarshal unless bound
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()

	return fromViper(v)
}

var keys = []string{
	"bigstock_account_id",
	"bigstock_secret_key",
	"bigstock_mode",
	"bigstock_base_url",
	"bigstock_timeout_ms",
	"bigstock_user_agent",
	"log_level",
	"output_dir",
	"publishers_file",
	"storage_type",
	"bbolt_path",
	"storage_ttl_seconds",
	"storage_cleanup_interval_seconds",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bigstock_mode", "prod")
	v.SetDefault("bigstock_base_url", "http://{prefix}api.bigstockphoto.com/2/{account_id}/")
	v.SetDefault("bigstock_timeout_ms", 2000)
	v.SetDefault("bigstock_user_agent", "bigstock-client-go")
	v.SetDefault("log_level", "info")
	v.SetDefault("output_dir", "./downloads")
	v.SetDefault("publishers_file", "")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/downloads.db")
	v.SetDefault("storage_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.AccountID = strings.TrimSpace(cfg.AccountID)
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))

	if cfg.AccountID == "" {
		return nil, fmt.Errorf("bigstock_account_id is required")
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("bigstock_secret_key is required")
	}
	if cfg.TimeoutMs <= 0 {
		return nil, fmt.Errorf("invalid bigstock_timeout_ms (must be positive milliseconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}
