package mcp

import (
	"maps"
	"slices"
)

// Equal reports whether a and b are the same variant with equal fields.
// Args order matters; maps are compared as key/value sets. A nil collection
// equals an empty one. Two nil definitions are equal.
func Equal(a, b Definition) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Match(a,
		func(x *Stdio) bool {
			y, ok := b.(*Stdio)
			return ok &&
				x.Command == y.Command &&
				slices.Equal(x.Args, y.Args) &&
				maps.Equal(x.Env, y.Env)
		},
		func(x *HTTP) bool {
			y, ok := b.(*HTTP)
			return ok && x.URL == y.URL && maps.Equal(x.Headers, y.Headers)
		},
		func(x *SSE) bool {
			y, ok := b.(*SSE)
			return ok && x.URL == y.URL && maps.Equal(x.Headers, y.Headers)
		},
	)
}
