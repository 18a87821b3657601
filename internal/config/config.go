// Package config provides unified configuration loading for the insight
// platform. Supports YAML files, environment variables, and programmatic
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
	"github.com/harshajxn/gecf-knowledge-insight/internal/registry"
)

// Config holds all configuration for the insight platform.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	LLM           LLMConfig           `yaml:"llm"`
	Extraction    ExtractionConfig    `yaml:"extraction"`
	Report        ReportConfig        `yaml:"report"`
	Stats         StatsConfig         `yaml:"stats"`
	Observability ObservabilityConfig `yaml:"observability"`
	Registry      RegistryConfig      `yaml:"registry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
	MaxUploadBytes   int64         `yaml:"max_upload_bytes"`
	StaticDir        string        `yaml:"static_dir"`
}

// LLMConfig holds summarization service settings.
type LLMConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Model          string        `yaml:"model"`
	APIKey         string        `yaml:"-"` // env only, never from file
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries"`
}

// ExtractionConfig holds document pipeline settings.
type ExtractionConfig struct {
	TempDir          string  `yaml:"temp_dir"`
	Workers          int     `yaml:"workers"`
	MinImageWidth    int     `yaml:"min_image_width"`
	MinImageHeight   int     `yaml:"min_image_height"`
	MarginBand       float64 `yaml:"margin_band"`
	ThumbnailWidth   int     `yaml:"thumbnail_width"`
	ThumbnailQuality int     `yaml:"thumbnail_quality"`
}

// ReportConfig holds PDF report composition settings.
type ReportConfig struct {
	FontDir  string `yaml:"font_dir"`
	LogoPath string `yaml:"logo_path"`
}

// StatsConfig holds usage-statistics settings.
type StatsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// RegistryConfig optionally overrides the built-in country and source
// registries, mostly for test deployments.
type RegistryConfig struct {
	Members   []string `yaml:"members"`
	Observers []string `yaml:"observers"`
	Sources   []string `yaml:"sources"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. An empty path loads defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for
// development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      60 * time.Second,
			WriteTimeout:     120 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
			MaxUploadBytes:   100 << 20,
			StaticDir:        "static",
		},
		LLM: LLMConfig{
			BaseURL:        "https://api.groq.com/openai/v1",
			Model:          "meta-llama/llama-4-maverick-17b-128e-instruct",
			RequestTimeout: 60 * time.Second,
			MaxRetries:     3,
		},
		Extraction: ExtractionConfig{
			TempDir:          os.TempDir(),
			Workers:          1,
			MinImageWidth:    100,
			MinImageHeight:   100,
			MarginBand:       0.15,
			ThumbnailWidth:   800,
			ThumbnailQuality: 85,
		},
		Report: ReportConfig{
			FontDir:  "fonts",
			LogoPath: "static/gecf_logo.png",
		},
		Stats: StatsConfig{
			Enabled: true,
			Path:    "usage_stats.json",
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			ServiceName: "gecf-insight",
		},
	}
}

// Validate checks invariants the rest of the system relies on.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return domain.ConfigError(fmt.Sprintf("server.port out of range: %d", c.Server.Port), nil)
	}
	if c.Extraction.Workers < 1 {
		return domain.ConfigError("extraction.workers must be >= 1", nil)
	}
	if c.Extraction.MarginBand < 0 || c.Extraction.MarginBand >= 0.5 {
		return domain.ConfigError("extraction.margin_band must be in [0, 0.5)", nil)
	}
	if c.Extraction.ThumbnailQuality < 1 || c.Extraction.ThumbnailQuality > 100 {
		return domain.ConfigError("extraction.thumbnail_quality must be in [1, 100]", nil)
	}
	return nil
}

// Countries returns the configured country registry, or the built-in one.
func (c *Config) Countries() registry.Countries {
	if len(c.Registry.Members) > 0 || len(c.Registry.Observers) > 0 {
		return registry.Countries{
			Members:   c.Registry.Members,
			Observers: c.Registry.Observers,
		}
	}
	return registry.DefaultCountries()
}

// Sources returns the configured source registry, or the built-in one.
func (c *Config) Sources() registry.Sources {
	if len(c.Registry.Sources) > 0 {
		return registry.Sources(c.Registry.Sources)
	}
	return registry.DefaultSources()
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("INSIGHT_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("INSIGHT_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("INSIGHT_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("INSIGHT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("INSIGHT_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("INSIGHT_LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("INSIGHT_STATS_PATH"); v != "" {
		cfg.Stats.Path = v
	}
	if v := os.Getenv("INSIGHT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Extraction.Workers = n
		}
	}
}
