package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bigboy/appconfig/internal/buildmode"
	"github.com/bigboy/appconfig/internal/endpoint"
	"github.com/bigboy/appconfig/internal/table"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	BuildMode            buildmode.Mode
	DevelopmentURL       string
	ProductionURL        string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
	CORSAllowedOrigins   []string
	LogLevel             string
	LogFile              string
	StorePath            string
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	BuildMode            string        `yaml:"build_mode"`
	Endpoint             yamlEndpoint  `yaml:"endpoint"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	CORS                 yamlCORS      `yaml:"cors"`
	Log                  yamlLog       `yaml:"log"`
	StorePath            string        `yaml:"store_path"`
}

type yamlEndpoint struct {
	DevelopmentURL string `yaml:"development_url"`
	ProductionURL  string `yaml:"production_url"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

type yamlCORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type yamlLog struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	BuildMode      *string
	DevelopmentURL *string
	ProductionURL  *string
	RateLimitRPS   *float64
	RateLimitBurst *int
	LogLevel       *string
	StorePath      *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, err
		}
	}

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Table resolves the client configuration table for the configured build mode.
func (c Config) Table() (table.Table, error) {
	ep, err := endpoint.Resolve(c.BuildMode, c.DevelopmentURL, c.ProductionURL)
	if err != nil {
		return table.Table{}, fmt.Errorf("resolve endpoint: %w", err)
	}
	return table.New(c.BuildMode, ep)
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		BuildMode:            buildmode.Default(),
		DevelopmentURL:       endpoint.DefaultDevelopmentURL,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		CORSAllowedOrigins:   []string{"*"},
		LogLevel:             "info",
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if yamlCfg.BuildMode != "" {
		mode, err := buildmode.Parse(yamlCfg.BuildMode)
		if err != nil {
			return fmt.Errorf("build_mode: %w", err)
		}
		cfg.BuildMode = mode
	}

	if yamlCfg.Endpoint.DevelopmentURL != "" {
		cfg.DevelopmentURL = yamlCfg.Endpoint.DevelopmentURL
	}
	if yamlCfg.Endpoint.ProductionURL != "" {
		cfg.ProductionURL = yamlCfg.Endpoint.ProductionURL
	}

	durations := []struct {
		raw    string
		target *time.Duration
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		if parsed, err := time.ParseDuration(d.raw); err == nil {
			*d.target = parsed
		}
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit.RPS != nil && *yamlCfg.RateLimit.RPS >= 0 {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil && *yamlCfg.RateLimit.Burst >= 0 {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	if len(yamlCfg.CORS.AllowedOrigins) > 0 {
		cfg.CORSAllowedOrigins = yamlCfg.CORS.AllowedOrigins
	}

	if yamlCfg.Log.Level != "" {
		cfg.LogLevel = yamlCfg.Log.Level
	}
	if yamlCfg.Log.File != "" {
		cfg.LogFile = yamlCfg.Log.File
	}

	if yamlCfg.StorePath != "" {
		cfg.StorePath = yamlCfg.StorePath
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if port := env("PORT"); port != "" {
		cfg.Port = port
	}

	if raw := env("APP_BUILD_MODE"); raw != "" {
		mode, err := buildmode.Parse(raw)
		if err != nil {
			return fmt.Errorf("APP_BUILD_MODE: %w", err)
		}
		cfg.BuildMode = mode
	}

	if u := env("API_DEVELOPMENT_URL"); u != "" {
		cfg.DevelopmentURL = u
	}
	if u := env("API_PRODUCTION_URL"); u != "" {
		cfg.ProductionURL = u
	}

	if rps := env("RATE_LIMIT_RPS"); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := env("RATE_LIMIT_BURST"); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}

	if origins := env("CORS_ALLOWED_ORIGINS"); origins != "" {
		if parsed := splitList(origins); len(parsed) > 0 {
			cfg.CORSAllowedOrigins = parsed
		}
	}

	if level := env("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if file := env("LOG_FILE"); file != "" {
		cfg.LogFile = file
	}
	if path := env("STORE_PATH"); path != "" {
		cfg.StorePath = path
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.BuildMode != nil && *overrides.BuildMode != "" {
		mode, err := buildmode.Parse(*overrides.BuildMode)
		if err != nil {
			return fmt.Errorf("parse build mode: %w", err)
		}
		cfg.BuildMode = mode
	}

	if overrides.DevelopmentURL != nil && *overrides.DevelopmentURL != "" {
		cfg.DevelopmentURL = *overrides.DevelopmentURL
	}
	if overrides.ProductionURL != nil && *overrides.ProductionURL != "" {
		cfg.ProductionURL = *overrides.ProductionURL
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.StorePath != nil && *overrides.StorePath != "" {
		cfg.StorePath = *overrides.StorePath
	}

	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return errors.New("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return errors.New("RATE_LIMIT_BURST must be >= 0")
	}
	if _, err := cfg.Table(); err != nil {
		return err
	}
	return nil
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
