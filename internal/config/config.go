package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderAzure  = "azure"
)

type Config struct {
	Server struct {
		Listen         string `yaml:"listen"`
		ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
		WriteTimeoutMs int    `yaml:"write_timeout_ms"`
	} `yaml:"server"`

	Auth struct {
		// APIKey is optional; when empty the /v1 routes are unauthenticated.
		APIKey string `yaml:"api_key"`
	} `yaml:"auth"`

	Upstream struct {
		Provider   string `yaml:"provider"`
		Endpoint   string `yaml:"endpoint"`
		APIKey     string `yaml:"api_key"`
		Deployment string `yaml:"deployment"`
		APIVersion string `yaml:"api_version"`
		MaxTokens  int    `yaml:"max_tokens"`
		// Temperature is a pointer so an explicit 0 survives defaulting;
		// 0 is a legitimate sampling temperature.
		Temperature *float64 `yaml:"temperature"`
		TimeoutMs   int      `yaml:"timeout_ms"`
	} `yaml:"upstream"`

	Translate struct {
		DefaultLang   string `yaml:"default_lang"`
		MaxInputBytes int    `yaml:"max_input_bytes"`
	} `yaml:"translate"`

	Logging struct {
		// AccessLog is a pointer so "access_log: false" stays false
		// through defaulting; absent means enabled.
		AccessLog     *bool  `yaml:"access_log"`
		AccessLogPath string `yaml:"access_log_path"`
	} `yaml:"logging"`
}

const (
	defaultTemperature = 0.3
	defaultMaxTokens   = 1000
)

// UpstreamTemperature returns the sampling temperature, defaulting to 0.3
// when the field was never set.
func (c *Config) UpstreamTemperature() float64 {
	if c.Upstream.Temperature == nil {
		return defaultTemperature
	}
	return *c.Upstream.Temperature
}

// AccessLogEnabled reports whether access logging is on; absent means on.
func (c *Config) AccessLogEnabled() bool {
	if c.Logging.AccessLog == nil {
		return true
	}
	return *c.Logging.AccessLog
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = ":7100"
	}
	if cfg.Server.ReadTimeoutMs <= 0 {
		cfg.Server.ReadTimeoutMs = 30000
	}
	if cfg.Server.WriteTimeoutMs <= 0 {
		cfg.Server.WriteTimeoutMs = 120000
	}
	if strings.TrimSpace(cfg.Upstream.Provider) == "" {
		cfg.Upstream.Provider = ProviderOpenAI
	}
	if strings.TrimSpace(cfg.Upstream.APIVersion) == "" {
		cfg.Upstream.APIVersion = "2023-05-15"
	}
	if cfg.Upstream.MaxTokens <= 0 {
		cfg.Upstream.MaxTokens = defaultMaxTokens
	}
	if cfg.Upstream.Temperature == nil {
		t := float64(defaultTemperature)
		cfg.Upstream.Temperature = &t
	}
	if cfg.Upstream.TimeoutMs <= 0 {
		cfg.Upstream.TimeoutMs = 120000
	}
	if strings.TrimSpace(cfg.Translate.DefaultLang) == "" {
		cfg.Translate.DefaultLang = "en"
	}
	if cfg.Translate.MaxInputBytes <= 0 {
		cfg.Translate.MaxInputBytes = 1 << 20
	}
	if cfg.Logging.AccessLog == nil {
		// default true for local debugging
		b := true
		cfg.Logging.AccessLog = &b
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("TGW_LISTEN")); v != "" {
		cfg.Server.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("TGW_API_KEY")); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("TGW_DEFAULT_LANG")); v != "" {
		cfg.Translate.DefaultLang = v
	}
	if v := strings.TrimSpace(os.Getenv("TGW_READ_TIMEOUT_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.ReadTimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("TGW_WRITE_TIMEOUT_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.WriteTimeoutMs = n
		}
	}

	// Upstream credentials follow the conventional environment names.
	// OPENAI_* applies first, AZURE_OPENAI_* wins and forces the azure provider.
	if v := strings.TrimSpace(os.Getenv("OPENAI_KEY")); v != "" {
		cfg.Upstream.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); v != "" {
		cfg.Upstream.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_DEPLOYMENT")); v != "" {
		cfg.Upstream.Deployment = v
	}
	azure := false
	if v := strings.TrimSpace(os.Getenv("AZURE_OPENAI_KEY")); v != "" {
		cfg.Upstream.APIKey = v
		azure = true
	}
	if v := strings.TrimSpace(os.Getenv("AZURE_OPENAI_ENDPOINT")); v != "" {
		cfg.Upstream.Endpoint = v
		azure = true
	}
	if v := strings.TrimSpace(os.Getenv("AZURE_OPENAI_DEPLOYMENT")); v != "" {
		cfg.Upstream.Deployment = v
		azure = true
	}
	if azure {
		cfg.Upstream.Provider = ProviderAzure
	}
}

// Validate checks the fields serve needs at startup.
func Validate(cfg *Config) error {
	switch cfg.Upstream.Provider {
	case ProviderOpenAI, ProviderAzure:
	default:
		return fmt.Errorf("upstream.provider must be %q or %q, got %q", ProviderOpenAI, ProviderAzure, cfg.Upstream.Provider)
	}
	if strings.TrimSpace(cfg.Upstream.Endpoint) == "" {
		return errors.New("upstream.endpoint is required (or set OPENAI_ENDPOINT / AZURE_OPENAI_ENDPOINT)")
	}
	if strings.TrimSpace(cfg.Upstream.APIKey) == "" {
		return errors.New("upstream.api_key is required (or set OPENAI_KEY / AZURE_OPENAI_KEY)")
	}
	if cfg.Upstream.Provider == ProviderAzure && strings.TrimSpace(cfg.Upstream.Deployment) == "" {
		return errors.New("upstream.deployment is required for the azure provider")
	}
	if t := cfg.UpstreamTemperature(); t < 0 || t > 2 {
		return fmt.Errorf("upstream.temperature out of range: %v", t)
	}
	return nil
}
