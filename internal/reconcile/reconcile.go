// Package reconcile imports client-only server definitions into the registry
// and detects where a client's definition diverges from the registry's.
package reconcile

import (
	"context"
	"slices"

	"github.com/thoreinstein/mcpsync/internal/client"
	"github.com/thoreinstein/mcpsync/internal/logging"
	"github.com/thoreinstein/mcpsync/internal/mcp"
	"github.com/thoreinstein/mcpsync/internal/registry"
)

// RegistryStore loads and persists the registry.
type RegistryStore interface {
	Load(ctx context.Context) *registry.Registry
	Save(ctx context.Context, reg *registry.Registry) error
}

// DocumentLoader loads one client's document.
type DocumentLoader interface {
	Kind() client.Kind
	Load(ctx context.Context) *client.Document
}

// Import records a definition copied from a client into the registry.
type Import struct {
	Name       string
	Source     client.Kind
	Definition mcp.Definition
}

// Conflict is a client definition that differs from the registry's
// definition of the same name.
type Conflict struct {
	Name     string
	Registry mcp.Definition
	Client   mcp.Definition
	Source   client.Kind
}

// Update replaces the registry definition of Name.
type Update struct {
	Name       string
	Definition mcp.Definition
}

// Result is the outcome of one reconcile pass.
type Result struct {
	// Registry includes the imported definitions. It has not been saved.
	Registry *registry.Registry

	Imports   []Import
	Conflicts []Conflict

	// Documents are the client documents as they were read.
	Documents map[client.Kind]*client.Document

	// State is the enablement snapshot taken when the documents were read.
	State client.State
}

// Engine runs reconcile passes.
type Engine struct {
	registry RegistryStore
	clients  []DocumentLoader
}

// NewEngine returns an Engine over the registry and client stores. Clients
// are always processed in the order of client.Kinds, whatever order they are
// passed in.
func NewEngine(reg RegistryStore, clients ...DocumentLoader) *Engine {
	ordered := slices.Clone(clients)
	slices.SortStableFunc(ordered, func(a, b DocumentLoader) int {
		return slices.Index(client.Kinds(), a.Kind()) - slices.Index(client.Kinds(), b.Kind())
	})
	return &Engine{registry: reg, clients: ordered}
}

// Reconcile loads the registry and every client document, imports names the
// registry lacks and records conflicts for names whose definitions differ.
// At most one conflict is recorded per name; the first client wins.
// Nothing is written.
func (e *Engine) Reconcile(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)

	res := &Result{
		Registry:  e.registry.Load(ctx),
		Documents: make(map[client.Kind]*client.Document, len(e.clients)),
	}

	docs := make([]*client.Document, 0, len(e.clients))
	for _, c := range e.clients {
		doc := c.Load(ctx)
		res.Documents[c.Kind()] = doc
		docs = append(docs, doc)
	}
	res.State = client.Snapshot(docs...)

	conflicted := make(map[string]bool)
	for _, doc := range docs {
		for _, entry := range doc.Entries() {
			def := doc.Kind.Normalize(entry.Raw)
			if entry.Name == "" || def == nil {
				logger.Debug("skipping invalid server entry", logging.KeyServer, entry.Name, logging.KeyClient, string(doc.Kind))
				continue
			}

			existing, ok := res.Registry.Get(entry.Name)
			switch {
			case !ok:
				res.Registry.Set(entry.Name, def)
				res.Imports = append(res.Imports, Import{Name: entry.Name, Source: doc.Kind, Definition: def})
				logger.Info("imported server", logging.KeyServer, entry.Name, logging.KeyClient, string(doc.Kind))
			case mcp.Equal(existing, def):
				logger.Log(ctx, logging.LevelTrace, "server in sync", logging.KeyServer, entry.Name, logging.KeyClient, string(doc.Kind))
			case conflicted[entry.Name]:
				logger.Debug("conflict already recorded", logging.KeyServer, entry.Name, logging.KeyClient, string(doc.Kind))
			default:
				conflicted[entry.Name] = true
				res.Conflicts = append(res.Conflicts, Conflict{
					Name:     entry.Name,
					Registry: existing,
					Client:   def,
					Source:   doc.Kind,
				})
				logger.Debug("conflict detected", logging.KeyServer, entry.Name, logging.KeyClient, string(doc.Kind))
			}
		}
	}

	return res, nil
}

// Commit applies updates to res.Registry and saves it when the pass
// imported anything or updates is non-empty. It reports whether it saved.
func (e *Engine) Commit(ctx context.Context, res *Result, updates []Update) (bool, error) {
	for _, u := range updates {
		res.Registry.Set(u.Name, u.Definition)
	}
	if len(res.Imports) == 0 && len(updates) == 0 {
		return false, nil
	}
	if err := e.registry.Save(ctx, res.Registry); err != nil {
		return false, err
	}
	return true, nil
}
