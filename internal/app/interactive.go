package app

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/thoreinstein/mcpsync/internal/cli/prompt"
	"github.com/thoreinstein/mcpsync/internal/client"
	"github.com/thoreinstein/mcpsync/internal/reconcile"
)

// Interactive runs the guided flow: import and resolve, pick a client, pick
// the servers it should have, and write them.
func (a *App) Interactive(ctx context.Context) error {
	fmt.Fprintln(a.out, "🔧 MCP Server Manager")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Scanning configurations...")

	res, err := a.reconcile(ctx)
	if err != nil {
		return err
	}

	if res.Registry.Len() == 0 {
		fmt.Fprintln(a.out, color.RedString("❌ No MCP servers found in any configuration."))
		fmt.Fprintln(a.out, "Add servers to Claude Code or Claude Desktop first, then run this tool again.")
		return nil
	}
	fmt.Fprintln(a.out, color.GreenString("✅ Found %d servers in registry", res.Registry.Len()))
	fmt.Fprintln(a.out)

	kinds := make([]prompt.Option, 0, len(a.clients))
	for _, c := range a.clients {
		kinds = append(kinds, prompt.Option{Label: c.Kind().DisplayName(), Value: c.Kind().String()})
	}
	answer, err := a.prompter.SelectOne(ctx, "Which client do you want to configure?", kinds)
	if err != nil {
		return err
	}
	kind, err := client.ParseKind(answer)
	if err != nil {
		return err
	}

	options := serverOptions(res, kind)
	if len(options) == 0 {
		fmt.Fprintln(a.out, color.RedString("❌ No compatible MCP servers found for %s.", kind.DisplayName()))
		if kind == client.Desktop {
			fmt.Fprintln(a.out, "Note: Claude Desktop only supports stdio servers.")
		}
		return nil
	}

	selected, err := a.prompter.SelectMany(ctx,
		fmt.Sprintf("Select MCP servers to enable for %s:", kind.DisplayName()), options)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "📝 Applying changes...")
	result, err := a.applier.ApplyToClient(ctx, res.Registry, kind, selected)
	if result != nil {
		a.printSkipped(*result)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, color.GreenString("✅ Configuration updated!"))
	fmt.Fprintf(a.out, "   %s: %d servers enabled\n", kind.DisplayName(), len(result.Applied))
	if len(result.Applied) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintf(a.out, "💡 Restart %s to apply changes.\n", kind.DisplayName())
	}
	return nil
}

// serverOptions lists the registry servers kind can run, sorted by name and
// checked when kind currently has them enabled.
func serverOptions(res *reconcile.Result, kind client.Kind) []prompt.Option {
	var options []prompt.Option
	for _, name := range res.Registry.Names() {
		def, _ := res.Registry.Get(name)
		if !kind.Supports(def) {
			continue
		}
		options = append(options, prompt.Option{
			Label:   fmt.Sprintf("%s (%s)", name, def.Type()),
			Value:   name,
			Checked: res.State.Enabled(kind, name),
		})
	}
	return options
}
