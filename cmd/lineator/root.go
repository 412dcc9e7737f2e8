package main

import (
	"fmt"
	"os"

	"github.com/aretw0/lineator/internal/cli"
	"github.com/aretw0/lineator/internal/config"
	"github.com/aretw0/lineator/internal/metrics"
	"github.com/spf13/cobra"
)

// app is built by the root PersistentPreRunE and shared by every command.
var app *cli.App

var rootCmd = &cobra.Command{
	Use:   "lineator",
	Short: "Lineator flattens K-tape Turing machines into single-tape machines",
	Long: `Lineator reads a K-tape Turing machine description and builds the
head-location phase of an equivalent single-tape machine: the composite
states that sweep the tape and record the symbol under each virtual head.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", config.DefaultPath, "Path to the YAML or JSON config file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "Emit logs as JSON")
	flags.String("log-file", "", "Also append JSON logs to this file")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Int("max-tapes", 0, "Refuse machines with more tapes than this")
	flags.Int("max-states", 0, "Refuse flattenings with more composite states than this")
	flags.StringSlice("comment-prefix", nil, "Line prefixes treated as comments (repeatable)")
}

func setupApp(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	cfg.Limits = cfg.Limits.Normalize()

	debug, err := flags.GetBool("debug")
	if err != nil {
		return err
	}
	logger, err := cli.NewLogger(cfg.Log, debug)
	if err != nil {
		return err
	}

	app = &cli.App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	return nil
}

// applyFlags overrides cfg with every persistent flag set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("log-level") {
		if cfg.Log.Level, err = flags.GetString("log-level"); err != nil {
			return fmt.Errorf("failed to read --log-level: %w", err)
		}
	}
	if flags.Changed("log-json") {
		if cfg.Log.JSON, err = flags.GetBool("log-json"); err != nil {
			return fmt.Errorf("failed to read --log-json: %w", err)
		}
	}
	if flags.Changed("log-file") {
		if cfg.Log.File, err = flags.GetString("log-file"); err != nil {
			return fmt.Errorf("failed to read --log-file: %w", err)
		}
	}
	if flags.Changed("max-tapes") {
		if cfg.Limits.MaxTapes, err = flags.GetInt("max-tapes"); err != nil {
			return fmt.Errorf("failed to read --max-tapes: %w", err)
		}
	}
	if flags.Changed("max-states") {
		if cfg.Limits.MaxStates, err = flags.GetInt("max-states"); err != nil {
			return fmt.Errorf("failed to read --max-states: %w", err)
		}
	}
	if flags.Changed("comment-prefix") {
		if cfg.CommentPrefixes, err = flags.GetStringSlice("comment-prefix"); err != nil {
			return fmt.Errorf("failed to read --comment-prefix: %w", err)
		}
	}
	return nil
}

// inputArg returns the first positional argument, or "-" for stdin.
func inputArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "-"
}
