// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingRPCURL = errors.New("rpc_url is not configured")
	ErrMissingAPIKey = errors.New("rpc_url has no api-key and metadata_url is not set")
)

const (
	EnvPrefix      = "TRANSFER_FEED"
	DefaultEnvFile = ".env"

	DefaultPriceURL         = "https://price.jup.ag/v4/price"
	DefaultMetadataEndpoint = "https://mainnet.helius-rpc.com/"
	DefaultPollIntervalMs   = 10000
	DefaultFetchLimit       = 20
	DefaultDisplayLimit     = 20
	DefaultRetries          = 3
	DefaultRetryBaseDelayMs = 1000
	DefaultTxDelayMs        = 1000
	DefaultMetadataDelayMs  = 500
	DefaultRequestTimeoutMs = 15000
	DefaultLogFile          = "logs/feed.log"
	DefaultLogBufferSize    = 500
	DefaultExportDir        = "exports"
)

type Config struct {
	RPCURL           string `mapstructure:"rpc_url"`
	MetadataURL      string `mapstructure:"metadata_url"`
	PriceURL         string `mapstructure:"price_url"`
	PollIntervalMs   int    `mapstructure:"poll_interval_ms"`
	FetchLimit       int    `mapstructure:"fetch_limit"`
	DisplayLimit     int    `mapstructure:"display_limit"`
	Retries          int    `mapstructure:"retries"`
	RetryBaseDelayMs int    `mapstructure:"retry_base_delay_ms"`
	TxDelayMs        int    `mapstructure:"tx_delay_ms"`
	MetadataDelayMs  int    `mapstructure:"metadata_delay_ms"`
	RequestTimeoutMs int    `mapstructure:"request_timeout_ms"`
	DebugLogging     bool   `mapstructure:"debug_logging"`
	LogFile          string `mapstructure:"log_file"`
	LogBufferSize    int    `mapstructure:"log_buffer_size"`
	ExportDir        string `mapstructure:"export_dir"`
}

func (c *Config) PollInterval() time.Duration   { return ms(c.PollIntervalMs) }
func (c *Config) RetryBaseDelay() time.Duration { return ms(c.RetryBaseDelayMs) }
func (c *Config) TxDelay() time.Duration        { return ms(c.TxDelayMs) }
func (c *Config) MetadataDelay() time.Duration  { return ms(c.MetadataDelayMs) }
func (c *Config) RequestTimeout() time.Duration { return ms(c.RequestTimeoutMs) }

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// Load reads .env (if present), the optional config file at path and the
// environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	return load(path, DefaultEnvFile)
}

func load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()

	defaults := map[string]interface{}{
		"rpc_url":             "",
		"metadata_url":        "",
		"price_url":           DefaultPriceURL,
		"poll_interval_ms":    DefaultPollIntervalMs,
		"fetch_limit":         DefaultFetchLimit,
		"display_limit":       DefaultDisplayLimit,
		"retries":             DefaultRetries,
		"retry_base_delay_ms": DefaultRetryBaseDelayMs,
		"tx_delay_ms":         DefaultTxDelayMs,
		"metadata_delay_ms":   DefaultMetadataDelayMs,
		"request_timeout_ms":  DefaultRequestTimeoutMs,
		"debug_logging":       false,
		"log_file":            DefaultLogFile,
		"log_buffer_size":     DefaultLogBufferSize,
		"export_dir":          DefaultExportDir,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	bindEnvironment(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := resolveMetadataURL(&cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func bindEnvironment(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Helius-style variable names are accepted alongside the prefixed one.
	_ = v.BindEnv("rpc_url", EnvPrefix+"_RPC_URL", "HELIUS_RPC_URL", "NEXT_PUBLIC_HELIUS_RPC_URL")
}

// resolveMetadataURL derives the asset endpoint from the api key embedded in
// the RPC URL when metadata_url is not set.
func resolveMetadataURL(cfg *Config) error {
	cfg.RPCURL = strings.TrimSpace(cfg.RPCURL)
	if cfg.RPCURL == "" {
		return ErrMissingRPCURL
	}
	if cfg.MetadataURL != "" {
		return nil
	}

	parsed, err := url.Parse(cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("invalid rpc_url: %w", err)
	}
	key := parsed.Query().Get("api-key")
	if key == "" {
		return ErrMissingAPIKey
	}

	cfg.MetadataURL = DefaultMetadataEndpoint + "?" + url.Values{"api-key": {key}}.Encode()
	return nil
}

func validateConfig(cfg *Config) error {
	urls := map[string]string{
		"rpc_url":      cfg.RPCURL,
		"metadata_url": cfg.MetadataURL,
		"price_url":    cfg.PriceURL,
	}
	for name, raw := range urls {
		if err := validateHTTPURL(raw); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return validateNumericParams(cfg)
}

func validateNumericParams(cfg *Config) error {
	if cfg.PollIntervalMs <= 0 {
		return errors.New("invalid poll_interval_ms")
	}
	if cfg.FetchLimit <= 0 {
		return errors.New("invalid fetch_limit")
	}
	if cfg.DisplayLimit <= 0 {
		return errors.New("invalid display_limit")
	}
	if cfg.Retries <= 0 {
		return errors.New("invalid retries count")
	}
	if cfg.RetryBaseDelayMs < 0 {
		return errors.New("invalid retry_base_delay_ms")
	}
	if cfg.TxDelayMs < 0 {
		return errors.New("invalid tx_delay_ms")
	}
	if cfg.MetadataDelayMs < 0 {
		return errors.New("invalid metadata_delay_ms")
	}
	if cfg.RequestTimeoutMs <= 0 {
		return errors.New("invalid request_timeout_ms")
	}
	if cfg.LogBufferSize <= 0 {
		return errors.New("invalid log_buffer_size")
	}
	return nil
}

func validateHTTPURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("invalid URL protocol")
	}
	if parsed.Host == "" {
		return errors.New("missing URL host")
	}
	return nil
}
