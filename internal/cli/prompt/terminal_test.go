package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/thoreinstein/mcpsync/internal/errors"
)

var testOptions = []Option{
	{Label: "Keep registry version", Value: "keep-registry"},
	{Label: "Use client version", Value: "use-client"},
	{Label: "Skip", Value: "skip"},
}

func TestSelectOne_EmptyList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewTerminalWithIO(strings.NewReader(""), &buf)

	_, err := p.SelectOne(context.Background(), "Pick", nil)
	if !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got: %v", err)
	}
}

func TestSelectOne_ValidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"explicit first", "1\n", "keep-registry"},
		{"explicit second", "2\n", "use-client"},
		{"default on empty", "\n", "keep-registry"},
		{"whitespace trimmed", "  3  \n", "skip"},
		{"no trailing newline", "2", "use-client"},
		{"retry after invalid", "9\nabc\n2\n", "use-client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p := NewTerminalWithIO(strings.NewReader(tt.input), &buf)

			got, err := p.SelectOne(context.Background(), "Resolve conflict for 'github':", testOptions)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SelectOne() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(buf.String(), "[2] Use client version") {
				t.Errorf("options not listed: %s", buf.String())
			}
		})
	}
}

func TestSelectOne_InvalidThenEOF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewTerminalWithIO(strings.NewReader("0\n"), &buf)

	_, err := p.SelectOne(context.Background(), "Pick", testOptions)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got: %v", err)
	}
	if !strings.Contains(buf.String(), "Invalid selection") {
		t.Errorf("expected invalid selection message, got: %s", buf.String())
	}
}

func TestSelectOne_EOFCancels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewTerminalWithIO(strings.NewReader(""), &buf)

	_, err := p.SelectOne(context.Background(), "Pick", testOptions)
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("expected ErrCancelled, got: %v", err)
	}
}

func TestSelectOne_ContextCancel(t *testing.T) {
	t.Parallel()

	// A pipe with no writer activity blocks until the context is cancelled.
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	p := NewTerminalWithIO(r, &buf)

	_, err := p.SelectOne(ctx, "Pick", testOptions)
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("expected ErrCancelled, got: %v", err)
	}
}

func TestSelectMany(t *testing.T) {
	t.Parallel()

	options := []Option{
		{Label: "alpha", Value: "alpha", Checked: true},
		{Label: "beta", Value: "beta"},
		{Label: "gamma", Value: "gamma", Checked: true},
		{Label: "delta", Value: "delta"},
	}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"keep defaults", "\n", []string{"alpha", "gamma"}},
		{"explicit list", "2,4\n", []string{"beta", "delta"}},
		{"spaces and order", "4 1\n", []string{"alpha", "delta"}},
		{"range", "2-3\n", []string{"beta", "gamma"}},
		{"all", "all\n", []string{"alpha", "beta", "gamma", "delta"}},
		{"none", "none\n", nil},
		{"retry after bad range", "3-9\n1\n", []string{"alpha"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p := NewTerminalWithIO(strings.NewReader(tt.input), &buf)

			got, err := p.SelectMany(context.Background(), "Select MCP servers to enable for Claude Code:", options)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("SelectMany() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(buf.String(), "[x] 1. alpha") || !strings.Contains(buf.String(), "[ ] 2. beta") {
				t.Errorf("checked state not shown: %s", buf.String())
			}
		})
	}
}

func TestParseChoices_Errors(t *testing.T) {
	t.Parallel()

	options := []Option{{Value: "a"}, {Value: "b"}}
	for _, input := range []string{"0", "3", "x", "1-x", "2-1", "-1"} {
		if _, err := parseChoices(input, options); err == nil {
			t.Errorf("parseChoices(%q) expected error", input)
		}
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
		hint  string
	}{
		{"default yes", "\n", true, true, "[Y/n]"},
		{"default no", "\n", false, false, "[y/N]"},
		{"yes", "y\n", false, true, "[y/N]"},
		{"YES", "YES\n", false, true, "[y/N]"},
		{"no", "no\n", true, false, "[Y/n]"},
		{"retry", "maybe\ny\n", false, true, "[y/N]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p := NewTerminalWithIO(strings.NewReader(tt.input), &buf)

			got, err := p.Confirm(context.Background(), "Sync to all clients?", tt.def)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(buf.String(), "Sync to all clients? "+tt.hint) {
				t.Errorf("prompt = %q", buf.String())
			}
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewTerminalWithIO(strings.NewReader(""), &buf)

	if _, err := p.Confirm(context.Background(), "Continue?", true); !errors.Is(err, ErrCancelled) {
		t.Errorf("expected ErrCancelled, got: %v", err)
	}
}
