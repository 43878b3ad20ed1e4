// Package apply writes registry definitions into client documents.
package apply

import (
	"context"
	"slices"

	"github.com/sourcegraph/conc"

	"github.com/thoreinstein/mcpsync/internal/client"
	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/logging"
	"github.com/thoreinstein/mcpsync/internal/registry"
)

// DocumentStore reads and writes one client's document.
type DocumentStore interface {
	Kind() client.Kind
	Load(ctx context.Context) *client.Document
	Save(ctx context.Context, doc *client.Document) error
}

// Skipped is a selected server the client cannot run.
type Skipped struct {
	Name string
	Type string
}

// ClientResult is the outcome of applying to one client.
type ClientResult struct {
	Kind client.Kind

	// Applied lists the names written, in write order.
	Applied []string

	// Skipped lists names dropped by the capability filter.
	Skipped []Skipped

	// Err is set when the document could not be written.
	Err error
}

// Report collects per-client outcomes of ApplyToAllClients in client.Kinds order.
type Report struct {
	Results []ClientResult
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []ClientResult {
	var failed []ClientResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Engine applies registry selections to client documents.
type Engine struct {
	stores map[client.Kind]DocumentStore
}

// NewEngine returns an Engine over the given client stores.
func NewEngine(stores ...DocumentStore) *Engine {
	e := &Engine{stores: make(map[client.Kind]DocumentStore, len(stores))}
	for _, s := range stores {
		e.stores[s.Kind()] = s
	}
	return e
}

// ApplyToClient rewrites the server map of one client so that it holds
// exactly the named servers that exist in reg. Names absent from reg are
// ignored. Servers the client cannot run are dropped with a warning and
// listed in the result. Every other field of the document is kept.
//
// The returned result is non-nil whenever the client is known, including
// when the write fails.
func (e *Engine) ApplyToClient(ctx context.Context, reg *registry.Registry, kind client.Kind, names []string) (*ClientResult, error) {
	store, ok := e.stores[kind]
	if !ok {
		return nil, errors.Newf("no store configured for client %q", kind)
	}
	res := &ClientResult{Kind: kind}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res, err
	}

	logger := logging.FromContext(ctx).With(logging.KeyClient, string(kind))
	doc := store.Load(ctx)

	entries := make([]client.Entry, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		def, ok := reg.Get(name)
		if !ok {
			logger.Debug("selected server not in registry", logging.KeyServer, name)
			continue
		}
		if !kind.Supports(def) {
			logger.Warn("skipping server not supported by client", logging.KeyServer, name, "type", def.Type())
			res.Skipped = append(res.Skipped, Skipped{Name: name, Type: def.Type()})
			continue
		}
		raw, err := kind.Encode(def)
		if err != nil {
			res.Err = errors.Wrapf(err, "encoding %q", name)
			return res, res.Err
		}
		entries = append(entries, client.Entry{Name: name, Raw: raw})
		res.Applied = append(res.Applied, name)
	}

	doc.SetEntries(entries)
	if err := store.Save(ctx, doc); err != nil {
		res.Err = err
		return res, err
	}

	logger.Info("applied servers", "count", len(res.Applied), "skipped", len(res.Skipped))
	return res, nil
}

// ApplyToAllClients writes, for every configured client, the servers that
// state records as enabled for it. Clients are written concurrently and a
// failure in one does not stop or undo the others. When any client fails
// the error matches errors.ErrPartialApply and names each failure; the
// report is always returned.
func (e *Engine) ApplyToAllClients(ctx context.Context, reg *registry.Registry, state client.State) (*Report, error) {
	var kinds []client.Kind
	for _, k := range client.Kinds() {
		if _, ok := e.stores[k]; ok {
			kinds = append(kinds, k)
		}
	}

	report := &Report{Results: make([]ClientResult, len(kinds))}

	var wg conc.WaitGroup
	for i, kind := range kinds {
		names := slices.Clone(state.Names(kind))
		wg.Go(func() {
			res, err := e.ApplyToClient(ctx, reg, kind, names)
			if res == nil {
				res = &ClientResult{Kind: kind, Err: err}
			}
			report.Results[i] = *res
		})
	}
	wg.Wait()

	failed := report.Failed()
	if len(failed) == 0 {
		return report, nil
	}

	errs := make([]error, 0, len(failed))
	for _, f := range failed {
		errs = append(errs, errors.Wrap(f.Err, f.Kind.DisplayName()))
	}
	err := errors.Mark(errors.Join(errs...), errors.ErrPartialApply)
	return report, errors.Wrapf(err, "%d of %d clients failed", len(failed), len(kinds))
}
