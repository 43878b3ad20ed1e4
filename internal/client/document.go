package client

import (
	"encoding/json"
	"slices"

	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/pkg/jsonobj"
)

// ServersKey is the top-level key holding server entries.
const ServersKey = "mcpServers"

// Entry is one server exactly as it appears in a client document.
type Entry struct {
	Name string
	Raw  json.RawMessage
}

// Document is a client configuration file. Only the server map is managed;
// every other top-level field is written back as it was read, in place.
type Document struct {
	Kind Kind

	doc     *jsonobj.Object
	servers []Entry
}

// NewDocument returns an empty document for kind.
func NewDocument(kind Kind) *Document {
	return &Document{Kind: kind, doc: jsonobj.New()}
}

// Parse decodes a client document. A missing or null server map is treated
// as empty.
func Parse(kind Kind, data []byte) (*Document, error) {
	doc, err := jsonobj.Parse(data)
	if err != nil {
		return nil, err
	}

	d := &Document{Kind: kind, doc: doc}
	raw, ok := doc.Get(ServersKey)
	if !ok || string(raw) == "null" {
		return d, nil
	}
	servers, err := jsonobj.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", ServersKey)
	}
	for name, entry := range servers.All() {
		d.servers = append(d.servers, Entry{Name: name, Raw: entry})
	}
	return d, nil
}

// Entries returns the server entries in document order.
func (d *Document) Entries() []Entry {
	return slices.Clone(d.servers)
}

// Names returns the server names in document order.
func (d *Document) Names() []string {
	names := make([]string, len(d.servers))
	for i, e := range d.servers {
		names[i] = e.Name
	}
	return names
}

// SetEntries replaces the whole server map.
func (d *Document) SetEntries(entries []Entry) {
	d.servers = slices.Clone(entries)
}

// MarshalJSON writes the document with the rebuilt server map. A document
// that had no server map gets one as its first key.
func (d *Document) MarshalJSON() ([]byte, error) {
	servers := jsonobj.New()
	for _, e := range d.servers {
		servers.Set(e.Name, e.Raw)
	}
	raw, err := servers.MarshalJSON()
	if err != nil {
		return nil, err
	}

	out := jsonobj.New()
	for k, v := range d.doc.All() {
		out.Set(k, v)
	}
	out.SetFirst(ServersKey, raw)
	return out.MarshalJSON()
}
