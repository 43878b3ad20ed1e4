package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Transport type constants as they appear in the "type" field.
const (
	// TypeStdio indicates local process communication via stdin/stdout.
	TypeStdio = "stdio"

	// TypeHTTP indicates a remote server reached over streamable HTTP.
	TypeHTTP = "http"

	// TypeSSE indicates a remote server reached over Server-Sent Events.
	TypeSSE = "sse"
)

// Definition is a canonical MCP server definition. It is a closed sum type:
// the only implementations are [*Stdio], [*HTTP] and [*SSE]. Code that
// branches on the variant should go through [Match].
type Definition interface {
	// Type returns the transport tag of the variant.
	Type() string

	sealed()
}

// Stdio is a server launched as a local process.
type Stdio struct {
	// Command is the executable to launch. Never empty.
	Command string

	// Args are passed to Command in order.
	Args []string

	// Env is merged into the process environment.
	Env map[string]string
}

// HTTP is a remote server reached over streamable HTTP.
type HTTP struct {
	URL     string
	Headers map[string]string
}

// SSE is a remote server reached over Server-Sent Events.
type SSE struct {
	URL     string
	Headers map[string]string
}

func (*Stdio) Type() string { return TypeStdio }
func (*HTTP) Type() string  { return TypeHTTP }
func (*SSE) Type() string   { return TypeSSE }

func (*Stdio) sealed() {}
func (*HTTP) sealed()  {}
func (*SSE) sealed()   {}

// Match calls the callback for the variant of def and returns its result.
// Every call site names all three variants, so adding a transport fails to
// compile until each branch is handled. def must not be nil.
func Match[T any](def Definition, onStdio func(*Stdio) T, onHTTP func(*HTTP) T, onSSE func(*SSE) T) T {
	switch d := def.(type) {
	case *Stdio:
		return onStdio(d)
	case *HTTP:
		return onHTTP(d)
	case *SSE:
		return onSSE(d)
	default:
		panic(fmt.Sprintf("mcp: unknown definition variant %T", def))
	}
}

// IsRemote reports whether def is reached over the network.
func IsRemote(def Definition) bool {
	return Match(def,
		func(*Stdio) bool { return false },
		func(*HTTP) bool { return true },
		func(*SSE) bool { return true },
	)
}

// Clone returns a deep copy of def.
func Clone(def Definition) Definition {
	return Match[Definition](def,
		func(s *Stdio) Definition {
			return &Stdio{Command: s.Command, Args: slices.Clone(s.Args), Env: maps.Clone(s.Env)}
		},
		func(h *HTTP) Definition {
			return &HTTP{URL: h.URL, Headers: maps.Clone(h.Headers)}
		},
		func(s *SSE) Definition {
			return &SSE{URL: s.URL, Headers: maps.Clone(s.Headers)}
		},
	)
}

// Record is the JSON shape shared by every variant. Field order here is the
// order keys are written to disk.
type Record struct {
	Type    string            `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Command string            `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
	Args    []string          `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty" toml:"env,omitempty"`
	URL     string            `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" toml:"headers,omitempty"`
}

// ToRecord converts def into its tagged on-disk record.
func ToRecord(def Definition) Record {
	return Match(def,
		func(s *Stdio) Record {
			return Record{Type: TypeStdio, Command: s.Command, Args: s.Args, Env: s.Env}
		},
		func(h *HTTP) Record {
			return Record{Type: TypeHTTP, URL: h.URL, Headers: h.Headers}
		},
		func(s *SSE) Record {
			return Record{Type: TypeSSE, URL: s.URL, Headers: s.Headers}
		},
	)
}

// Encode marshals rec as compact JSON. HTML characters are left unescaped
// so URLs round-trip as written.
func Encode(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalJSON writes the tagged record.
func (s *Stdio) MarshalJSON() ([]byte, error) { return Encode(ToRecord(s)) }

// MarshalJSON writes the tagged record.
func (h *HTTP) MarshalJSON() ([]byte, error) { return Encode(ToRecord(h)) }

// MarshalJSON writes the tagged record.
func (s *SSE) MarshalJSON() ([]byte, error) { return Encode(ToRecord(s)) }
