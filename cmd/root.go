package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/proofreader/internal/config"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	catalog    string
	logLevel   string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "proofreader",
		Short: "Page numbering, scan resolution and proofreading quality for transcribed scans",
		Long: `Proofreader resolves index and page names against their scanned
djvu, pdf or image files, numbers pages the way an index's pagelist asks
for, and gates page edits through the proofreading quality levels.

Scans come from a JSONL or Parquet catalog, or from a MediaWiki API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			if err := setupLogging(opts.logLevel); err != nil {
				return err
			}
			return opts.loadConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file (default $"+config.EnvConfig+")")
	cmd.PersistentFlags().StringVar(&opts.catalog, "catalog", "", "Path to a JSONL or Parquet scan catalog (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default $LOG_LEVEL or info)")

	cmd.AddCommand(newResolveCmd(opts))
	cmd.AddCommand(newFormatCmd(opts))
	cmd.AddCommand(newQualityCmd(opts))
	cmd.AddCommand(newPagesCmd(opts))
	cmd.AddCommand(newCatalogCmd(opts))
	cmd.AddCommand(newInfoCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

func (o *rootOptions) loadConfig() error {
	path := o.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if o.catalog != "" {
		cfg.CatalogPath = o.catalog
	}

	warnings, err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, w := range warnings {
		slog.Debug("Config warning", "warning", w)
	}
	o.cfg = cfg
	return nil
}

func setupLogging(level string) error {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}

	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "", "info":
		logLevel = slog.LevelInfo
	case "debug":
		logLevel = slog.LevelDebug
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return nil
}
