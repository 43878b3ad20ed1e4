package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpsync/cmd/mcpsync/commands/flags"
	"github.com/thoreinstein/mcpsync/internal/app"
	"github.com/thoreinstein/mcpsync/internal/cli/prompt"
	"github.com/thoreinstein/mcpsync/internal/config"
	"github.com/thoreinstein/mcpsync/internal/errors"
)

// newApp builds the App for a command from the loaded configuration.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadedConfig()
	if err != nil {
		return nil, err
	}
	return app.FromConfig(cfg, prompt.NewTerminal(), cmd.OutOrStdout(),
		app.WithShowSecrets(flags.ShowSecrets())), nil
}

func loadedConfig() (*config.Config, error) {
	cfg, err := flags.Config()
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

// HandleError prints err to w and returns the process exit code. A
// cancelled prompt is reported as a cancellation rather than an error.
func HandleError(w io.Writer, err error) int {
	if err == nil {
		return errors.ExitSuccess
	}
	if errors.Is(err, errors.ErrCancelled) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "❌ Operation cancelled.")
		return errors.ExitCancelled
	}

	fmt.Fprintf(w, "❌ Error: %v\n", err)
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "   %s\n", exitErr.Suggestion)
	}
	return errors.ExitCode(err)
}
