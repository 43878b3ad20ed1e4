package client

import (
	"encoding/json"

	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/mcp"
	"github.com/thoreinstein/mcpsync/internal/paths"
)

// Kind identifies a client application.
type Kind string

// Supported clients.
const (
	Code    = Kind(paths.ClientCode)
	Desktop = Kind(paths.ClientDesktop)
)

// ErrUnsupported is returned when a definition cannot be written to a client.
var ErrUnsupported = errors.New("server type not supported by client")

// Kinds returns every client in the fixed processing order. Conflict
// attribution depends on this order.
func Kinds() []Kind {
	return []Kind{Code, Desktop}
}

// ParseKind converts a client name such as "code" into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errors.Newf("unknown client %q (valid: code, desktop)", s)
}

func (k Kind) String() string {
	return string(k)
}

// DisplayName returns the product name shown to users.
func (k Kind) DisplayName() string {
	switch k {
	case Code:
		return "Claude Code"
	case Desktop:
		return "Claude Desktop"
	default:
		return string(k)
	}
}

// Supports reports whether the client can run def. Desktop only launches
// local processes.
func (k Kind) Supports(def mcp.Definition) bool {
	if k != Desktop {
		return true
	}
	return !mcp.IsRemote(def)
}

// Normalize converts a raw entry from this client's document into a
// canonical definition. Desktop entries carry no type tag, so stdio is
// assumed unless the entry names a type itself.
func (k Kind) Normalize(raw json.RawMessage) mcp.Definition {
	if k != Desktop {
		return mcp.NormalizeJSON(raw)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	if obj, ok := v.(map[string]any); ok {
		if _, tagged := obj["type"]; !tagged {
			obj["type"] = mcp.TypeStdio
		}
	}
	return mcp.Normalize(v)
}

// Encode renders def in this client's native shape: tagged for Code,
// untagged stdio for Desktop.
func (k Kind) Encode(def mcp.Definition) (json.RawMessage, error) {
	if !k.Supports(def) {
		return nil, errors.Wrapf(ErrUnsupported, "%s servers on %s", def.Type(), k.DisplayName())
	}
	rec := mcp.ToRecord(def)
	if k == Desktop {
		rec.Type = ""
	}
	return mcp.Encode(rec)
}
