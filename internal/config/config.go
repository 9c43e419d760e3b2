package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Version is the rawprobe release version, overridable at link time.
var Version = "0.2.0"

// Config holds all rawprobe configuration.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Inspect  InspectConfig  `yaml:"inspect"`
	Simulate SimulateConfig `yaml:"simulate"`
}

// InspectConfig holds DNG inspector settings.
type InspectConfig struct {
	// ExiftoolPath is the command used for metadata enrichment. The
	// inspector degrades silently when it is not on PATH.
	ExiftoolPath string `yaml:"exiftool_path"`
	ReportName   string `yaml:"report_name"`
	SummaryName  string `yaml:"summary_name"`
}

// SimulateConfig holds inference simulator settings.
type SimulateConfig struct {
	// ModelPath points at the ONNX smoke-test artifact. Empty or
	// missing paths produce "skipped" inference results.
	ModelPath  string `yaml:"model_path"`
	ReportName string `yaml:"report_name"`
	// Limit caps how many files are simulated per run. 0 means all.
	Limit int `yaml:"limit"`
	// Seed feeds the synthetic sensor generator.
	Seed int64 `yaml:"seed"`
	// Thumbs enables writing PNG thumbnails of synthetic previews.
	Thumbs   bool `yaml:"thumbs"`
	ThumbMax int  `yaml:"thumb_max"`
}

// Load reads configuration from environment variables with sensible
// defaults. When RAWPROBE_CONFIG names a YAML file, its values are
// applied first and env vars override them.
func Load() (Config, error) {
	cfg := Config{
		LogLevel: "info",
		Inspect: InspectConfig{
			ExiftoolPath: "exiftool",
			ReportName:   "test_results.json",
			SummaryName:  "README.md",
		},
		Simulate: SimulateConfig{
			ReportName: "onnx_test_results.json",
			Limit:      3,
			Seed:       42,
			ThumbMax:   256,
		},
	}

	if path := os.Getenv("RAWPROBE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.LogLevel = getenv("RAWPROBE_LOG_LEVEL", cfg.LogLevel)
	cfg.Inspect.ExiftoolPath = getenv("RAWPROBE_EXIFTOOL", cfg.Inspect.ExiftoolPath)
	cfg.Inspect.ReportName = getenv("RAWPROBE_INSPECT_REPORT", cfg.Inspect.ReportName)
	cfg.Inspect.SummaryName = getenv("RAWPROBE_INSPECT_SUMMARY", cfg.Inspect.SummaryName)
	cfg.Simulate.ModelPath = getenv("RAWPROBE_MODEL_PATH", cfg.Simulate.ModelPath)
	cfg.Simulate.ReportName = getenv("RAWPROBE_SIMULATE_REPORT", cfg.Simulate.ReportName)
	cfg.Simulate.Limit = getenvInt("RAWPROBE_SIMULATE_LIMIT", cfg.Simulate.Limit)
	cfg.Simulate.Seed = int64(getenvInt("RAWPROBE_SEED", int(cfg.Simulate.Seed)))
	cfg.Simulate.ThumbMax = getenvInt("RAWPROBE_THUMB_MAX", cfg.Simulate.ThumbMax)
	if v := os.Getenv("RAWPROBE_THUMBS"); v != "" {
		cfg.Simulate.Thumbs = v == "true" || v == "1"
	}

	return cfg, nil
}

// Validate checks the configuration and aggregates all problems into a
// single error. A missing model artifact is not a validation error: it
// degrades to a "skipped" inference result at run time.
func (c Config) Validate() error {
	var errs []error

	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	if c.Inspect.ExiftoolPath == "" {
		errs = append(errs, errors.New("exiftool path must not be empty"))
	}
	if c.Inspect.ReportName == "" {
		errs = append(errs, errors.New("inspect report name must not be empty"))
	}
	if c.Simulate.ReportName == "" {
		errs = append(errs, errors.New("simulate report name must not be empty"))
	}
	if c.Simulate.Limit < 0 {
		errs = append(errs, fmt.Errorf("simulate limit must be >= 0, got %d", c.Simulate.Limit))
	}
	if c.Simulate.ThumbMax <= 0 {
		errs = append(errs, fmt.Errorf("thumb max must be > 0, got %d", c.Simulate.ThumbMax))
	}

	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
