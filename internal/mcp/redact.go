package mcp

import "github.com/thoreinstein/mcpsync/internal/redact"

// Redact returns a copy of def safe to print: secret-looking env and header
// values are masked, as is any password embedded in a URL.
func Redact(def Definition) Definition {
	return Match[Definition](def,
		func(s *Stdio) Definition {
			c := Clone(s).(*Stdio)
			c.Env = redact.Map(c.Env)
			return c
		},
		func(h *HTTP) Definition {
			return &HTTP{URL: redact.URL(h.URL), Headers: redact.Map(h.Headers)}
		},
		func(s *SSE) Definition {
			return &SSE{URL: redact.URL(s.URL), Headers: redact.Map(s.Headers)}
		},
	)
}
