// Package resolve asks the user how to settle definitions that differ
// between the registry and a client.
package resolve

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/mcpsync/internal/cli/prompt"
	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/logging"
	"github.com/thoreinstein/mcpsync/internal/mcp"
	"github.com/thoreinstein/mcpsync/internal/reconcile"
)

// Choice is the user's answer for one conflict.
type Choice string

// Available choices. KeepRegistry and Skip both leave the registry as it is.
const (
	KeepRegistry Choice = "keep-registry"
	UseClient    Choice = "use-client"
	Skip         Choice = "skip"
)

// Resolver renders conflicts and collects the user's choices.
type Resolver struct {
	prompter    prompt.Prompter
	out         io.Writer
	showSecrets bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithShowSecrets prints env and header values unmasked.
func WithShowSecrets(show bool) Option {
	return func(r *Resolver) {
		r.showSecrets = show
	}
}

// New returns a Resolver that writes to out and asks p.
func New(p prompt.Prompter, out io.Writer, opts ...Option) *Resolver {
	r := &Resolver{prompter: p, out: out}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve asks about each conflict in order and returns one update per
// conflict answered with UseClient. If a prompt is cancelled, Resolve stops
// and returns an error matching prompt.ErrCancelled with no updates.
func (r *Resolver) Resolve(ctx context.Context, conflicts []reconcile.Conflict) ([]reconcile.Update, error) {
	logger := logging.FromContext(ctx)

	var updates []reconcile.Update
	for i, c := range conflicts {
		if err := ctx.Err(); err != nil {
			return nil, errors.Mark(err, prompt.ErrCancelled)
		}

		r.render(i+1, len(conflicts), c)

		answer, err := r.prompter.SelectOne(ctx,
			fmt.Sprintf("How should '%s' be resolved?", c.Name),
			options(c))
		if err != nil {
			return nil, errors.Wrapf(err, "resolving conflict for %q", c.Name)
		}

		choice := Choice(answer)
		logger.Info("conflict resolved", logging.KeyServer, c.Name, logging.KeyClient, string(c.Source), "choice", string(choice))
		if choice == UseClient {
			updates = append(updates, reconcile.Update{Name: c.Name, Definition: c.Client})
		}
	}
	return updates, nil
}

func options(c reconcile.Conflict) []prompt.Option {
	return []prompt.Option{
		{Label: "Keep registry version", Value: string(KeepRegistry)},
		{Label: "Use " + c.Source.DisplayName() + " version", Value: string(UseClient)},
		{Label: "Skip for now", Value: string(Skip)},
	}
}

func (r *Resolver) render(n, total int, c reconcile.Conflict) {
	header := color.New(color.FgYellow, color.Bold).SprintfFunc()
	fmt.Fprintf(r.out, "\n%s\n", header("⚠️  Conflict %d/%d: '%s' differs between the registry and %s",
		n, total, c.Name, c.Source.DisplayName()))

	r.renderDefinition("Registry", c.Registry)
	r.renderDefinition(c.Source.DisplayName(), c.Client)
	fmt.Fprintln(r.out)
}

func (r *Resolver) renderDefinition(label string, def mcp.Definition) {
	if !r.showSecrets {
		def = mcp.Redact(def)
	}
	fmt.Fprintf(r.out, "  %s:\n", color.CyanString(label))
	for _, line := range Describe(def) {
		fmt.Fprintf(r.out, "    %s\n", line)
	}
}

// Describe returns "key: value" lines for def, in a stable order. Values are
// printed as given; callers mask secrets first.
func Describe(def mcp.Definition) []string {
	lines := []string{"type:    " + def.Type()}
	return mcp.Match(def,
		func(s *mcp.Stdio) []string {
			lines = append(lines, "command: "+s.Command)
			if len(s.Args) > 0 {
				lines = append(lines, "args:    "+strings.Join(s.Args, " "))
			}
			return append(lines, pairs("env:     ", s.Env)...)
		},
		func(h *mcp.HTTP) []string {
			lines = append(lines, "url:     "+h.URL)
			return append(lines, pairs("headers: ", h.Headers)...)
		},
		func(s *mcp.SSE) []string {
			lines = append(lines, "url:     "+s.URL)
			return append(lines, pairs("headers: ", s.Headers)...)
		},
	)
}

func pairs(label string, m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	indent := strings.Repeat(" ", len(label))
	lines := make([]string, 0, len(m))
	for i, k := range slices.Sorted(maps.Keys(m)) {
		prefix := indent
		if i == 0 {
			prefix = label
		}
		lines = append(lines, prefix+k+"="+m[k])
	}
	return lines
}
