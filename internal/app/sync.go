package app

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/thoreinstein/mcpsync/internal/apply"
	"github.com/thoreinstein/mcpsync/internal/logging"
	"github.com/thoreinstein/mcpsync/internal/reconcile"
)

// Sync imports client-only servers into the registry and settles conflicts.
func (a *App) Sync(ctx context.Context) error {
	fmt.Fprintln(a.out, "🔄 Syncing MCP server configurations...")
	fmt.Fprintln(a.out)
	if _, err := a.reconcile(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, color.GreenString("✅ Sync completed!"))
	return nil
}

// Init creates the registry, or updates an existing one, from the clients.
func (a *App) Init(ctx context.Context) error {
	fmt.Fprintln(a.out, "🚀 Initializing MCP registry...")
	fmt.Fprintln(a.out)
	if _, err := a.reconcile(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, color.GreenString("✅ Registry initialized!"))
	return nil
}

// reconcile runs one import pass, asks about each conflict and persists the
// result. When the user took any client version, it offers to push the
// registry back to every client.
func (a *App) reconcile(ctx context.Context) (*reconcile.Result, error) {
	logger := logging.FromContext(ctx)

	res, err := a.reconciler.Reconcile(ctx)
	if err != nil {
		return nil, err
	}
	for _, imp := range res.Imports {
		fmt.Fprintf(a.out, "📥 Imported server '%s' from %s\n", imp.Name, imp.Source.DisplayName())
	}

	updates, err := a.resolver.Resolve(ctx, res.Conflicts)
	if err != nil {
		return nil, err
	}

	saved, err := a.reconciler.Commit(ctx, res, updates)
	if err != nil {
		return nil, err
	}
	if saved {
		fmt.Fprintln(a.out, color.GreenString("✅ Updated registry with %d servers", res.Registry.Len()))
	} else {
		logger.Debug("registry unchanged", "path", a.registry.Path())
	}

	if len(updates) == 0 {
		return res, nil
	}

	push, err := a.prompter.Confirm(ctx, "Sync the resolved registry to all clients?", true)
	if err != nil {
		return nil, err
	}
	if !push {
		logger.Info("skipped pushing resolved registry to clients")
		return res, nil
	}

	report, err := a.applier.ApplyToAllClients(ctx, res.Registry, res.State)
	a.printReport(report)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (a *App) printReport(report *apply.Report) {
	if report == nil {
		return
	}
	for _, r := range report.Results {
		a.printSkipped(r)
		if r.Err != nil {
			fmt.Fprintln(a.out, color.RedString("❌ %s: %v", r.Kind.DisplayName(), r.Err))
			continue
		}
		fmt.Fprintf(a.out, "✅ %s: %d servers enabled\n", r.Kind.DisplayName(), len(r.Applied))
	}
}

func (a *App) printSkipped(r apply.ClientResult) {
	for _, s := range r.Skipped {
		fmt.Fprintln(a.out, color.YellowString("⚠️  Skipping '%s' for %s: %s servers not supported",
			s.Name, r.Kind.DisplayName(), s.Type))
	}
}
