// Package commands implements the CLI commands for mcpsync.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpsync/cmd/mcpsync/commands/backup"
	"github.com/thoreinstein/mcpsync/cmd/mcpsync/commands/flags"
	"github.com/thoreinstein/mcpsync/internal/config"
	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// showSecrets holds the value of the --show-secrets flag.
var showSecrets bool

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress log output below error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/mcpsync/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&showSecrets, "show-secrets", false,
		"print env and header values without masking")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("mcpsync version {{.Version}}\n")

	// Errors are printed by HandleError so the exit code and suggestion
	// stay together.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(backup.Cmd)
}

func initConfig() {
	config.Init()
	flags.SetConfig(config.Load(configFile))
}

var rootCmd = &cobra.Command{
	Use:   "mcpsync",
	Short: "Keep MCP server definitions in sync across Claude clients",
	Long: `mcpsync keeps a central registry of MCP server definitions (~/.mcp.json)
in sync with Claude Code (~/.claude.json) and Claude Desktop
(claude_desktop_config.json).

Run without a subcommand for the interactive flow: servers found only in a
client are imported into the registry, conflicting definitions are resolved
one by one, and you then choose which registry servers a client should have.

Claude Desktop only runs stdio servers; http and sse servers are skipped for
it with a warning.`,
	Example: `  # Guided setup
  mcpsync

  # Show which servers each client has enabled
  mcpsync list

  # Import client-only servers and resolve conflicts
  mcpsync sync

  # Print one definition as YAML
  mcpsync show github --format yaml

  See Also: mcpsync list, mcpsync sync, mcpsync backup`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.Interactive(cmd.Context())
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"),
			"Pass only one of -q and -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("MCPSYNC_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, ok := logging.ParseFormat(logFormat)
	if !ok {
		return errors.NewUserError(errors.Newf("invalid --log-format %q", logFormat),
			"Use --log-format text or --log-format json")
	}

	var handler slog.Handler
	if format == logging.FormatJSON {
		handler = logging.NewJSONHandler(cmd.ErrOrStderr(), level)
	} else {
		handler = logging.NewHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		handler = logging.NewTee(handler, logging.NewJSONHandler(f, level))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	flags.SetShowSecrets(showSecrets)
	return nil
}

// checkConfig surfaces a configuration load failure for commands that need it.
func checkConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if _, err := flags.Config(); err != nil {
		return errors.NewConfigError(err)
	}
	return nil
}

// Execute runs the root command with ctx. Cancelling ctx interrupts any
// pending prompt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
