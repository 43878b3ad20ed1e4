// Package registry owns the authoritative mapping of server name to
// canonical definition and its persisted form, ~/.mcp.json by default.
package registry

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"

	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/mcp"
	"github.com/thoreinstein/mcpsync/pkg/jsonobj"
)

// ServersKey is the top-level key holding server definitions.
const ServersKey = "mcpServers"

// Registry maps unique, case-sensitive server names to definitions.
// Top-level fields other than mcpServers are carried through untouched.
// Servers are written in document order, with new names appended.
type Registry struct {
	servers map[string]mcp.Definition
	order   []string
	// raw holds loaded entries as read, reused while the definition is unchanged.
	raw map[string]json.RawMessage
	doc *jsonobj.Object
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		servers: make(map[string]mcp.Definition),
		raw:     make(map[string]json.RawMessage),
		doc:     jsonobj.New(),
	}
}

// Parse decodes a registry document. Entries that do not normalize to a
// definition are dropped and their names returned in skipped.
func Parse(data []byte) (reg *Registry, skipped []string, err error) {
	doc, err := jsonobj.Parse(data)
	if err != nil {
		return nil, nil, err
	}

	reg = New()
	reg.doc = doc

	raw, ok := doc.Get(ServersKey)
	if !ok || string(raw) == "null" {
		return reg, nil, nil
	}
	servers, err := jsonobj.Parse(raw)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing %s", ServersKey)
	}
	for name, entry := range servers.All() {
		def := mcp.NormalizeJSON(entry)
		if name == "" || def == nil {
			skipped = append(skipped, name)
			continue
		}
		reg.Set(name, def)
		reg.raw[name] = entry
	}
	return reg, skipped, nil
}

// Len returns the number of servers.
func (r *Registry) Len() int {
	return len(r.servers)
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (mcp.Definition, bool) {
	def, ok := r.servers[name]
	return def, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.servers[name]
	return ok
}

// Set registers def under name, replacing any existing definition.
// name must not be empty.
func (r *Registry) Set(name string, def mcp.Definition) {
	if _, ok := r.servers[name]; !ok {
		r.order = append(r.order, name)
	}
	r.servers[name] = def
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.servers))
}

// All iterates over the servers in document order.
func (r *Registry) All() iter.Seq2[string, mcp.Definition] {
	return func(yield func(string, mcp.Definition) bool) {
		for _, name := range r.order {
			if !yield(name, r.servers[name]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of r.
func (r *Registry) Clone() *Registry {
	cp := New()
	for name, def := range r.All() {
		cp.Set(name, mcp.Clone(def))
	}
	for name, entry := range r.raw {
		cp.raw[name] = slices.Clone(entry)
	}
	for k, v := range r.doc.All() {
		cp.doc.Set(k, slices.Clone(v))
	}
	return cp
}

// MarshalJSON writes the registry document. An entry whose definition is
// unchanged since it was loaded is written back as read.
func (r *Registry) MarshalJSON() ([]byte, error) {
	servers := jsonobj.New()
	for name, def := range r.All() {
		if entry, ok := r.raw[name]; ok && mcp.Equal(mcp.NormalizeJSON(entry), def) {
			servers.Set(name, entry)
			continue
		}
		raw, err := mcp.Encode(mcp.ToRecord(def))
		if err != nil {
			return nil, errors.Wrapf(err, "encoding server %q", name)
		}
		servers.Set(name, raw)
	}
	raw, err := servers.MarshalJSON()
	if err != nil {
		return nil, err
	}

	out := jsonobj.New()
	for k, v := range r.doc.All() {
		out.Set(k, v)
	}
	out.SetFirst(ServersKey, raw)
	return out.MarshalJSON()
}
