// Package config defines the wdl configuration file, its defaults and
// validation. Loading is done by viper in cmd.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/wdl/internal/tracing"
)

// Config holds all configuration options for wdl.
type Config struct {
	Cache         CacheConfig   `mapstructure:"cache"`
	Catalog       CatalogConfig `mapstructure:"catalog"`
	Log           LogConfig     `mapstructure:"log"`
	Preview       PreviewConfig `mapstructure:"preview"`
	Render        RenderConfig  `mapstructure:"render"`
	MarkdownStyle string        `mapstructure:"markdown_style"` // "dark" (default) or "light"
	Tracing       TracingConfig `mapstructure:"tracing"`
}

// CacheConfig controls the compile result cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// CatalogConfig locates the layout catalog database.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig filters the --debug log.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn or error
}

// PreviewConfig tunes the live preview.
type PreviewConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Width    int           `mapstructure:"width"` // 0 = terminal width
}

// RenderConfig tunes terminal rendering.
type RenderConfig struct {
	Color bool `mapstructure:"color"`
}

// TracingConfig holds OpenTelemetry settings for compile spans.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // none, file, stdout, otlp
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
	ServiceName  string  `mapstructure:"service_name"`
}

// Provider converts the settings for tracing.NewProvider.
func (t TracingConfig) Provider() tracing.Config {
	filePath := t.FilePath
	if t.Exporter == tracing.ExporterFile && filePath == "" {
		filePath = DefaultTracesFilePath()
	}
	return tracing.Config{
		Enabled:      t.Enabled,
		Exporter:     t.Exporter,
		FilePath:     expandHome(filePath),
		OTLPEndpoint: t.OTLPEndpoint,
		SampleRate:   t.SampleRate,
		ServiceName:  t.ServiceName,
	}
}

// Dir returns ~/.config/wdl, or .wdl when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wdl"
	}
	return filepath.Join(home, ".config", "wdl")
}

// DefaultCatalogPath returns the default catalog database location.
func DefaultCatalogPath() string {
	return filepath.Join(Dir(), "catalog.db")
}

// DefaultTracesFilePath returns the default file exporter location.
func DefaultTracesFilePath() string {
	return filepath.Join(Dir(), "traces", "traces.jsonl")
}

// CatalogPath returns the catalog path with a leading ~ expanded.
func (c Config) CatalogPath() string {
	if c.Catalog.Path == "" {
		return DefaultCatalogPath()
	}
	return expandHome(c.Catalog.Path)
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Catalog: CatalogConfig{
			Path: DefaultCatalogPath(),
		},
		Log: LogConfig{
			Level: "debug",
		},
		Preview: PreviewConfig{
			Debounce: 150 * time.Millisecond,
		},
		Render: RenderConfig{
			Color: true,
		},
		MarkdownStyle: "dark",
		Tracing: TracingConfig{
			Exporter:     tracing.ExporterFile,
			OTLPEndpoint: tracing.DefaultOTLPEndpoint,
			SampleRate:   1.0,
			ServiceName:  tracing.DefaultServiceName,
		},
	}
}

// Validate reports the first invalid setting.
func Validate(c Config) error {
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.Preview.Debounce < 0 {
		return fmt.Errorf("preview.debounce must not be negative, got %s", c.Preview.Debounce)
	}
	if c.Preview.Width < 0 {
		return fmt.Errorf("preview.width must not be negative, got %d", c.Preview.Width)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("markdown_style must be dark or light, got %q", c.MarkdownStyle)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTracing checks the tracing section.
func ValidateTracing(t TracingConfig) error {
	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be none, file, stdout or otlp, got %q", t.Exporter)
	}
	if t.SampleRate < 0 || t.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0 and 1, got %g", t.SampleRate)
	}
	return nil
}
