package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/prepbuddy/config"
	"github.com/c360studio/prepbuddy/export"
	"github.com/c360studio/prepbuddy/server"
	"github.com/c360studio/prepbuddy/vocabulary/prepbuddy"
)

// app carries state shared by subcommands once the root has loaded config.
type app struct {
	configPath string
	logLevel   string

	level  slog.LevelVar
	logger *slog.Logger
	loader *config.Loader
	cfg    *config.Config
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "prepbuddy namespace vocabulary",
		Long: `prepbuddy prints, exports and serves the namespace vocabulary of the
prepbuddy data-preparation library.

Every value is the exact dotted package name the language bindings resolve
against, for example:

  CLUSTER           org.apache.datacommons.prepbuddy.clusterers
  PYTHON_CONNECTOR  org.apache.spark.api.python`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		a.listCmd(),
		a.getCmd(),
		a.matchCmd(),
		a.exportCmd(),
		a.serveCmd(),
		versionCmd(),
	)

	return cmd
}

// setup loads configuration and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: &a.level}))
	slog.SetDefault(a.logger)
	a.loader = config.NewLoader(a.logger)

	var err error
	if a.configPath != "" {
		a.cfg, err = a.loader.LoadFile(a.configPath)
	} else {
		a.cfg, err = a.loader.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
		if err := a.cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	a.level.Set(parseLevel(a.cfg.Log.Level))

	a.logger.Debug("Configuration loaded",
		"format", a.cfg.Output.Format,
		"addr", a.cfg.Server.Addr)
	return nil
}

// outputFormat returns the --format flag value, or the configured default.
func (a *app) outputFormat(flag string) (export.Format, error) {
	if flag == "" {
		flag = a.cfg.Output.Format
	}
	return export.ParseFormat(flag)
}

func (a *app) listCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.outputFormat(format)
			if err != nil {
				return err
			}
			return export.Write(cmd.OutOrStdout(), f, prepbuddy.Entries())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json, yaml, csv, tsv, env, python)")
	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get SYMBOL",
		Short: "Print the namespace for a symbolic name",
		Example: `  prepbuddy get CLUSTER
  prepbuddy get python-connector`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sym, err := prepbuddy.ParseSymbol(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), prepbuddy.MustLookup(sym))
			return err
		},
	}
}

func (a *app) matchCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "match PATTERN",
		Short: "List namespaces matching a dotted glob",
		Long: `List namespaces matching a dotted glob. '*' matches within one segment and
'**' spans segments.`,
		Example: `  prepbuddy match 'org.apache.datacommons.prepbuddy.*'
  prepbuddy match '**.python'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.outputFormat(format)
			if err != nil {
				return err
			}
			entries, err := prepbuddy.Match(args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				a.logger.Warn("No namespaces matched", "pattern", args[0])
			}
			return export.Write(cmd.OutOrStdout(), f, entries)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json, yaml, csv, tsv, env, python)")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the vocabulary to a file or stdout",
		Example: `  prepbuddy export --format python --output pyprepbuddy/package.py
  prepbuddy export --format env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.outputFormat(format)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return export.Write(cmd.OutOrStdout(), f, prepbuddy.Entries())
			}
			return a.exportToFile(output, f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json, yaml, csv, tsv, env, python)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func (a *app) exportToFile(path string, f export.Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := export.Write(file, f, prepbuddy.Entries()); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	a.logger.Info("Exported vocabulary", "path", path, "format", f)
	return nil
}

func (a *app) serveCmd() *cobra.Command {
	var (
		addr        string
		watchConfig bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the vocabulary over HTTP",
		Long: `Serve the vocabulary over HTTP.

Endpoints:
  GET /namespaces            all entries (?format=)
  GET /namespaces/{symbol}   one entry
  GET /match?pattern=        entries matching a dotted glob
  GET /healthz               liveness
  GET /metrics               Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if watchConfig {
				if a.configPath == "" {
					return fmt.Errorf("--watch-config requires --config")
				}
				go a.watchConfig(ctx)
			}

			return server.New(a.cfg.Server, a.logger).ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&watchConfig, "watch-config", false, "Reload the log level when the config file changes")
	return cmd
}

// watchConfig applies log level changes from the config file. Listener
// settings take effect on restart only.
func (a *app) watchConfig(ctx context.Context) {
	err := a.loader.Watch(ctx, a.configPath, 0, a.applyReload)
	if err != nil {
		a.logger.Error("Config watch stopped", "error", err)
	}
}

// applyReload applies a reloaded config. An explicit --log-level wins over
// the file.
func (a *app) applyReload(cfg *config.Config) {
	if a.logLevel != "" {
		a.logger.Debug("Ignoring config log level, --log-level is set", "level", cfg.Log.Level)
		return
	}
	a.level.Set(parseLevel(cfg.Log.Level))
	a.logger.Info("Log level updated", "level", cfg.Log.Level)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
