// Package mcp defines the canonical MCP (Model Context Protocol) server
// definition shared by the registry and every client document.
//
// # Definitions
//
// A [Definition] is one of three variants:
//
//	&mcp.Stdio{Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-github"}}
//	&mcp.HTTP{URL: "https://api.example.com/mcp", Headers: map[string]string{"Authorization": "Bearer ${API_KEY}"}}
//	&mcp.SSE{URL: "https://api.example.com/sse"}
//
// The set is closed. Branch on the variant with [Match], which takes one
// callback per variant:
//
//	label := mcp.Match(def,
//	    func(s *mcp.Stdio) string { return s.Command },
//	    func(h *mcp.HTTP) string { return h.URL },
//	    func(s *mcp.SSE) string { return s.URL },
//	)
//
// # Normalization
//
// Client documents are untrusted and loosely typed. [Normalize] turns a
// decoded JSON value into a Definition, or nil when it does not describe a
// server. [Equal] compares two definitions structurally and decides whether
// an imported entry is new data or a conflict.
//
// # Encoding
//
// [Record] is the on-disk shape. Definitions marshal to their tagged record;
// callers that need the untagged stdio shape clear [Record.Type].
package mcp
