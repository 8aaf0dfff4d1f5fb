package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	TransportResty = "resty"
	TransportFiber = "fiber"
)

type Config struct {
	Transport             string        `mapstructure:"transport"`
	Size                  int           `mapstructure:"size"`
	RequestTimeout        time.Duration `mapstructure:"request_timeout"`
	DialTimeout           time.Duration `mapstructure:"dial_timeout"`
	TlsTimeout            time.Duration `mapstructure:"tls_timeout"`
	IdleConnTimeout       time.Duration `mapstructure:"idle_conn_timeout"`
	MaxConnsPerHost       int           `mapstructure:"max_conns_per_host"`
	InsecureSkipVerify    bool          `mapstructure:"insecure_skip_verify"`
	ResponseHeaderTimeout time.Duration `mapstructure:"response_header_timeout"`

	// RateLimit caps outgoing requests per second across the pool. Zero disables it.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`

	LogLevel   string `mapstructure:"log_level"`
	APIBaseURL string `mapstructure:"api_base_url"`
}

func DefaultConfig() Config {
	return Config{
		Transport:             TransportResty,
		Size:                  8,
		RequestTimeout:        10 * time.Second,
		DialTimeout:           5 * time.Second,
		TlsTimeout:            2 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxConnsPerHost:       1,
		InsecureSkipVerify:    false,
		ResponseHeaderTimeout: 0,
		RateLimit:             0,
		RateBurst:             1,
		LogLevel:              "info",
		APIBaseURL:            "https://jsonplaceholder.typicode.com",
	}
}

// Validate reports the first setting that cannot be used to build a pool.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportResty, TransportFiber:
	default:
		return fmt.Errorf("invalid transport %q (want %q or %q)", c.Transport, TransportResty, TransportFiber)
	}
	if c.Size < 0 {
		return fmt.Errorf("invalid size %d (must not be negative)", c.Size)
	}
	if c.RequestTimeout < 0 || c.DialTimeout < 0 || c.TlsTimeout < 0 ||
		c.IdleConnTimeout < 0 || c.ResponseHeaderTimeout < 0 {
		return fmt.Errorf("invalid timeouts (must not be negative)")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate_limit %v (must not be negative)", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		return fmt.Errorf("invalid rate_burst %d (must be positive when rate_limit is set)", c.RateBurst)
	}
	return nil
}

// Load reads configuration from env files and RETROFIRE_* environment
// variables, falling back to DefaultConfig for anything unset. Without
// envFiles an absent ./.env is ignored; a named file must exist.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("retrofire")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	def := DefaultConfig()
	v.SetDefault("transport", def.Transport)
	v.SetDefault("size", def.Size)
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("dial_timeout", def.DialTimeout)
	v.SetDefault("tls_timeout", def.TlsTimeout)
	v.SetDefault("idle_conn_timeout", def.IdleConnTimeout)
	v.SetDefault("max_conns_per_host", def.MaxConnsPerHost)
	v.SetDefault("insecure_skip_verify", def.InsecureSkipVerify)
	v.SetDefault("response_header_timeout", def.ResponseHeaderTimeout)
	v.SetDefault("rate_limit", def.RateLimit)
	v.SetDefault("rate_burst", def.RateBurst)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("api_base_url", def.APIBaseURL)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
