// Package app wires the stores, engines and prompts into the user-facing
// operations of mcpsync.
package app

import (
	"io"

	"github.com/thoreinstein/mcpsync/internal/apply"
	"github.com/thoreinstein/mcpsync/internal/backup"
	"github.com/thoreinstein/mcpsync/internal/cli/prompt"
	"github.com/thoreinstein/mcpsync/internal/client"
	"github.com/thoreinstein/mcpsync/internal/config"
	"github.com/thoreinstein/mcpsync/internal/reconcile"
	"github.com/thoreinstein/mcpsync/internal/registry"
	"github.com/thoreinstein/mcpsync/internal/resolve"
)

// App runs mcpsync operations against one registry and the client documents.
type App struct {
	registry *registry.Store
	clients  []*client.Store

	reconciler *reconcile.Engine
	applier    *apply.Engine
	resolver   *resolve.Resolver

	prompter    prompt.Prompter
	out         io.Writer
	showSecrets bool
}

// Option configures an App.
type Option func(*App)

// WithShowSecrets prints env and header values unmasked.
func WithShowSecrets(show bool) Option {
	return func(a *App) {
		a.showSecrets = show
	}
}

// New returns an App over the given stores. User-facing output goes to out;
// questions go through p.
func New(reg *registry.Store, clients []*client.Store, p prompt.Prompter, out io.Writer, opts ...Option) *App {
	a := &App{
		registry: reg,
		clients:  clients,
		prompter: p,
		out:      out,
	}
	for _, opt := range opts {
		opt(a)
	}

	loaders := make([]reconcile.DocumentLoader, len(clients))
	stores := make([]apply.DocumentStore, len(clients))
	for i, c := range clients {
		loaders[i] = c
		stores[i] = c
	}
	a.reconciler = reconcile.NewEngine(reg, loaders...)
	a.applier = apply.NewEngine(stores...)
	a.resolver = resolve.New(p, out, resolve.WithShowSecrets(a.showSecrets))
	return a
}

// FromConfig builds an App from loaded configuration. When backups are
// enabled, every document is snapshotted once before its first rewrite.
func FromConfig(cfg *config.Config, p prompt.Prompter, out io.Writer, opts ...Option) *App {
	var sess *backup.Session
	if cfg.Backup.Enabled {
		var bopts []backup.Option
		if cfg.Backup.Dir != "" {
			bopts = append(bopts, backup.WithBackupDir(cfg.Backup.Dir))
		}
		if cfg.Backup.Retention > 0 {
			bopts = append(bopts, backup.WithRetentionCount(cfg.Backup.Retention))
		}
		sess = backup.NewSession(backup.NewManager(bopts...))
	}

	reg := registry.NewStore(cfg.RegistryPath, registry.WithBackups(sess))
	clients := make([]*client.Store, 0, len(client.Kinds()))
	for _, k := range client.Kinds() {
		clients = append(clients, client.NewStore(k, cfg.ClientPath(k.String()), client.WithBackups(sess)))
	}
	return New(reg, clients, p, out, opts...)
}

// RegistryPath returns the location of the registry file.
func (a *App) RegistryPath() string {
	return a.registry.Path()
}
