// Package cmd implements the CLI commands for lmdpipe using Cobra.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lmdpipe/core/fetch"
	"github.com/gaurav-prasanna/lmdpipe/core/render"
	"github.com/gaurav-prasanna/lmdpipe/internal/config"
	"github.com/gaurav-prasanna/lmdpipe/internal/logging"
)

// Persistent flag variables.
var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
	flagSet       []string
)

// State prepared by the root command before any subcommand runs.
var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lmdpipe",
	Short: "lmdpipe turns a Le Monde diplomatique issue into an e-book",
	Long: `lmdpipe fetches one monthly issue of Le Monde diplomatique (German edition),
extracts its table of contents and articles, and builds an e-book from them.

Usage:
  lmdpipe fetch [-y YEAR] [-m MONTH] [flags]
  lmdpipe issues
  lmdpipe serve`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath(), "Path to the TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: console, json, auto")
	rootCmd.PersistentFlags().StringArrayVar(&flagSet, "set", nil, "Override a config value (key=value, repeatable)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	pairErrs := loaded.ApplyPairs(flagSet)
	if flagLogLevel != "" {
		loaded.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		loaded.LogFormat = flagLogFormat
	}

	logger, err = logging.New(logging.Options{
		Level:  loaded.LogLevel,
		Format: loaded.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	for _, e := range pairErrs {
		var ce *config.ConfigurationError
		if errors.As(e, &ce) {
			logger.Warn("ignoring option", "pair", ce.Pair, "reason", ce.Reason)
		}
	}
	cfg = loaded
	return nil
}

// source returns the page source selected by the --local flag.
func source(local bool) fetch.Source {
	mode := fetch.Online
	if local {
		mode = fetch.Local
	}
	return fetch.NewSource(mode, fetch.Options{
		OnlineRoot: cfg.OnlineRoot,
		LocalRoot:  cfg.LocalRoot,
		MirrorDir:  cfg.MirrorDir,
	})
}

// templates returns the configured page templates.
func templates() (*render.Templates, error) {
	if cfg.TemplateDir == "" {
		return render.NewTemplates()
	}
	return render.NewTemplatesFS(os.DirFS(cfg.TemplateDir), "*.html")
}
