package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"MCPSYNC_DEBUG=1", "1", slog.LevelDebug},
		{"MCPSYNC_DEBUG=true", "true", slog.LevelDebug},
		{"MCPSYNC_DEBUG=2", "2", logging.LevelTrace},
		{"MCPSYNC_DEBUG=0", "0", slog.LevelWarn},
		{"MCPSYNC_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv("MCPSYNC_DEBUG", tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			if !slog.Default().Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
		})
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	origQuiet, origVerbosity := quiet, verbosity
	defer func() { quiet, verbosity = origQuiet, origVerbosity }()

	quiet = true
	verbosity = 1

	err := setupLogging(rootCmd)
	if err == nil {
		t.Fatal("expected error for --quiet with --verbose")
	}
	if errors.ExitCode(err) != errors.ExitUser {
		t.Errorf("ExitCode() = %d, want %d", errors.ExitCode(err), errors.ExitUser)
	}
}

func TestSetupLogging_InvalidFormat(t *testing.T) {
	origFormat := logFormat
	defer func() { logFormat = origFormat }()

	logFormat = "xml"
	if err := setupLogging(rootCmd); err == nil {
		t.Error("expected error for invalid --log-format")
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	origFile, origVerbosity := logFile, verbosity
	defer func() { logFile, verbosity = origFile, origVerbosity }()

	logFile = filepath.Join(t.TempDir(), "mcpsync.log")
	verbosity = 1

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	logging.FromContext(rootCmd.Context()).Info("written to file", "server", "github")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"written to file"`) {
		t.Errorf("log file should contain JSON record, got: %s", data)
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  []string
	}{
		{"nil", nil, errors.ExitSuccess, nil},
		{"cancelled prompt", errors.Wrap(errors.ErrCancelled, "resolving conflict"), errors.ExitCancelled, []string{"Operation cancelled."}},
		{"interrupted context", context.Canceled, errors.ExitCancelled, []string{"Operation cancelled."}},
		{"user error", errors.NewUserError(errors.New("bad input"), "try again"), errors.ExitUser, []string{"❌ Error: bad input", "try again"}},
		{"write failure", errors.Mark(errors.New("disk full"), errors.ErrDestinationWrite), errors.ExitSystem, []string{"disk full"}},
		{"partial apply", errors.Wrap(errors.ErrPartialApply, "1 of 2 clients failed"), errors.ExitSystem, []string{"1 of 2 clients failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := HandleError(&buf, tt.err); got != tt.wantCode {
				t.Errorf("HandleError() = %d, want %d", got, tt.wantCode)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q, got: %s", want, buf.String())
				}
			}
			if tt.err == nil && buf.Len() != 0 {
				t.Errorf("expected no output for nil error, got: %s", buf.String())
			}
		})
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	if rootCmd.Use != "mcpsync" {
		t.Errorf("rootCmd.Use = %q, want mcpsync", rootCmd.Use)
	}

	want := []string{"backup", "init", "list", "show", "sync", "version"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	for _, flag := range []string{"verbose", "quiet", "log-format", "log-file", "config", "show-secrets"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s not defined", flag)
		}
	}
}
