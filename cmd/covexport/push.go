package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nicktill/covexport/pkg/config"
	"github.com/nicktill/covexport/pkg/report"
	"github.com/nicktill/covexport/pkg/sdk"
	"github.com/nicktill/covexport/pkg/sdk/metrics"
)

func newPushCmd() *cobra.Command {
	var (
		flags      config.Config
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "covexport [flags] REPORT",
		Short: "Parse and export your code coverage results to Datadog",
		Long: `covexport reads a coverage summary export (llvm-cov export -summary-only),
flattens it into gauge series named <series-name>.totals.<category>.<field>
and submits them to a Datadog series intake in a single request.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Capture configuration and time once, then pass them down
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, flags)

			ts := time.Now().Unix()
			if cfg.Timestamp != 0 {
				ts = cfg.Timestamp
			}

			logger := log.Default()
			if cfg.Quiet {
				logger = log.New(io.Discard, "", 0)
			}

			return push(cmd.Context(), cfg, args[0], ts, cmd.OutOrStdout(), logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "config file (json, yaml or toml)")
	f.StringVar(&flags.ProjectName, "project-name", "", "name of the project")
	f.StringVar(&flags.ProjectVersion, "project-version", "", "version of the project")
	f.StringVar(&flags.CommitHash, "commit-hash", "", "hash of the current commit")
	f.StringVar(&flags.BranchName, "branch-name", "", "name of the current branch")
	f.StringVar(&flags.Site, "datadog-site", config.DefaultSite, "Datadog site to connect to")
	f.StringVar(&flags.APIKey, "datadog-api-key", "", "Datadog API key to authenticate (or DD_API_KEY)")
	f.StringVar(&flags.SeriesName, "series-name", config.DefaultSeriesName, "base name of the series")
	f.BoolVar(&flags.Compress, "compress", false, "gzip the request body")
	f.BoolVar(&flags.DryRun, "dry-run", false, "print the payload instead of submitting it")
	f.BoolVar(&flags.Quiet, "quiet", false, "suppress informational output")
	f.Int64Var(&flags.Timestamp, "timestamp", 0, "run timestamp in epoch seconds (default now)")

	return cmd
}

// applyFlags copies explicitly set flags over the loaded configuration
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags config.Config) {
	overrides := map[string]func(){
		"project-name":    func() { cfg.ProjectName = flags.ProjectName },
		"project-version": func() { cfg.ProjectVersion = flags.ProjectVersion },
		"commit-hash":     func() { cfg.CommitHash = flags.CommitHash },
		"branch-name":     func() { cfg.BranchName = flags.BranchName },
		"datadog-site":    func() { cfg.Site = flags.Site },
		"datadog-api-key": func() { cfg.APIKey = flags.APIKey },
		"series-name":     func() { cfg.SeriesName = flags.SeriesName },
		"compress":        func() { cfg.Compress = flags.Compress },
		"dry-run":         func() { cfg.DryRun = flags.DryRun },
		"quiet":           func() { cfg.Quiet = flags.Quiet },
		"timestamp":       func() { cfg.Timestamp = flags.Timestamp },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

// push parses the report, flattens it and submits the series.
// A malformed report fails before any network activity.
func push(ctx context.Context, cfg config.Config, path string, ts int64, out io.Writer, logger *log.Logger) error {
	doc, err := report.ParseFile(path)
	if err != nil {
		return err
	}
	logger.Printf("📄 Parsed %s: %d entries (type %q, version %q)", path, len(doc.Entries), doc.Kind, doc.Version)

	tags := metrics.RunTags{
		ProjectName:    cfg.ProjectName,
		ProjectVersion: cfg.ProjectVersion,
		CommitHash:     cfg.CommitHash,
		BranchName:     cfg.BranchName,
	}.Tags()
	series := metrics.WithTags(doc.Flatten(ts, cfg.SeriesName), tags)
	logger.Printf("📊 Built %d series at %d with tags %v", len(series), ts, tags)

	if cfg.DryRun {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(metrics.Payload{Series: series}); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}
		return nil
	}

	client, err := sdk.New(sdk.ClientConfig{
		Site:     cfg.Site,
		APIKey:   cfg.APIKey,
		Compress: cfg.Compress,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	ack, err := client.Submit(ctx, series)
	if err != nil {
		return fmt.Errorf("unable to post metrics: %w", err)
	}

	if !cfg.Quiet {
		color.New(color.FgGreen).Fprintf(out, "✅ Submitted %d series to %s\n", ack.Series, cfg.Site)
	}
	return nil
}
