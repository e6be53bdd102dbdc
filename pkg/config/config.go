package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jinzhu/configor"
)

// Exporter defaults
const (
	DefaultSite       = "https://api.datadoghq.com"
	DefaultSeriesName = "coverage"
	SeriesPath        = "/api/v1/series"
	ValidatePath      = "/api/v1/validate"
	EnvPrefix         = "COVEXPORT"
)

// Transport timeouts and limits
const (
	DefaultTransportTimeout = 10 * time.Second
	MaxErrorBodyBytes       = 1024
)

// Intake defaults
const (
	DefaultIntakeAddr     = ":8126"
	IntakeReadTimeout     = 10 * time.Second
	IntakeWriteTimeout    = 10 * time.Second
	IntakeShutdownTimeout = 5 * time.Second
	IntakeMaxBodyBytes    = 64 << 20
)

// Config is the run-time configuration of a push.
// It is loaded once at the top of a run and passed down explicitly.
type Config struct {
	ProjectName    string `json:"project_name" yaml:"project_name" env:"COVEXPORT_PROJECT_NAME"`
	ProjectVersion string `json:"project_version" yaml:"project_version" env:"COVEXPORT_PROJECT_VERSION"`
	CommitHash     string `json:"commit_hash" yaml:"commit_hash" env:"COVEXPORT_COMMIT_HASH"`
	BranchName     string `json:"branch_name" yaml:"branch_name" env:"COVEXPORT_BRANCH_NAME"`

	Site       string `json:"datadog_site" yaml:"datadog_site" env:"COVEXPORT_DATADOG_SITE" default:"https://api.datadoghq.com"`
	APIKey     string `json:"datadog_api_key" yaml:"datadog_api_key" env:"DD_API_KEY"`
	SeriesName string `json:"series_name" yaml:"series_name" env:"COVEXPORT_SERIES_NAME" default:"coverage"`

	Compress bool `json:"compress" yaml:"compress" env:"COVEXPORT_COMPRESS"`
	DryRun   bool `json:"dry_run" yaml:"dry_run" env:"COVEXPORT_DRY_RUN"`
	Quiet    bool `json:"quiet" yaml:"quiet" env:"COVEXPORT_QUIET"`

	// Timestamp overrides the run timestamp (epoch seconds) when non-zero
	Timestamp int64 `json:"timestamp" yaml:"timestamp" env:"COVEXPORT_TIMESTAMP"`
}

// Load reads the configuration from defaults, the optional file at path and
// the environment, in increasing order of precedence.
func Load(path string) (Config, error) {
	var cfg Config

	var files []string
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
		files = append(files, path)
	}

	loader := configor.New(&configor.Config{ENVPrefix: EnvPrefix, Silent: true})
	if err := loader.Load(&cfg, files...); err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Site == "" {
		cfg.Site = DefaultSite
	}
	if cfg.SeriesName == "" {
		cfg.SeriesName = DefaultSeriesName
	}
	return cfg, nil
}
