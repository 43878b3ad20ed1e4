package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/thoreinstein/mcpsync/internal/mcp"
)

func TestParse(t *testing.T) {
	data := []byte(`{
  "mcpServers": {
    "github": {"type": "stdio", "command": "npx", "args": ["-y", "@modelcontextprotocol/server-github"]},
    "docs": {"type": "http", "url": "https://docs.example.com/mcp"},
    "broken": {"type": "http"},
    "": {"command": "node"}
  },
  "$schema": "https://example.com/schema.json"
}`)

	reg, skipped, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := map[string]mcp.Definition{
		"github": &mcp.Stdio{Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-github"}},
		"docs":   &mcp.HTTP{URL: "https://docs.example.com/mcp"},
	}
	got := make(map[string]mcp.Definition)
	for name, def := range reg.All() {
		got[name] = def
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("servers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"broken", ""}, skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NoServers(t *testing.T) {
	for _, data := range []string{`{}`, `{"mcpServers": null}`} {
		reg, _, err := Parse([]byte(data))
		if err != nil {
			t.Fatalf("Parse(%s) error = %v", data, err)
		}
		if reg.Len() != 0 {
			t.Errorf("Parse(%s) Len() = %d, want 0", data, reg.Len())
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, data := range []string{`[]`, `{"mcpServers": []}`, `{"mcpServers": {`} {
		if _, _, err := Parse([]byte(data)); err == nil {
			t.Errorf("Parse(%s) expected error", data)
		}
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := New()
	reg.Set("zeta", &mcp.Stdio{Command: "z"})
	reg.Set("Alpha", &mcp.Stdio{Command: "a"})
	reg.Set("alpha", &mcp.Stdio{Command: "a"})

	want := []string{"Alpha", "alpha", "zeta"}
	if diff := cmp.Diff(want, reg.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("Alpha") || reg.Has("ALPHA") {
		t.Error("names should be case-sensitive")
	}
}

func TestRegistry_MarshalJSON(t *testing.T) {
	reg := New()
	reg.Set("web", &mcp.HTTP{URL: "https://x?a=1&b=2"})
	reg.Set("local", &mcp.Stdio{Command: "node", Args: []string{"a.js"}})

	got, err := reg.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"mcpServers":{"web":{"type":"http","url":"https://x?a=1&b=2"},"local":{"type":"stdio","command":"node","args":["a.js"]}}}`
	if string(got) != want {
		t.Errorf("MarshalJSON() =\n%s\nwant\n%s", got, want)
	}
}

func TestRegistry_MarshalJSON_DocumentOrder(t *testing.T) {
	reg, _, err := Parse([]byte(`{"mcpServers":{"zeta":{"command":"z","type":"stdio"},"alpha":{"url":"https://a","type":"sse"},"mid":{"command":"m"}}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	reg.Set("mid", &mcp.Stdio{Command: "m2"})
	reg.Set("beta", &mcp.HTTP{URL: "https://b"})

	got, err := reg.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"mcpServers":{` +
		`"zeta":{"command":"z","type":"stdio"},` +
		`"alpha":{"url":"https://a","type":"sse"},` +
		`"mid":{"type":"stdio","command":"m2"},` +
		`"beta":{"type":"http","url":"https://b"}}}`
	if string(got) != want {
		t.Errorf("MarshalJSON() =\n%s\nwant\n%s", got, want)
	}

	var names []string
	for name := range reg.All() {
		names = append(names, name)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid", "beta"}, names); diff != "" {
		t.Errorf("All() order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"alpha", "beta", "mid", "zeta"}, reg.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_MarshalJSON_KeepsOtherFields(t *testing.T) {
	reg, _, err := Parse([]byte(`{"$schema":"s","mcpServers":{},"owner":"me"}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	reg.Set("a", &mcp.SSE{URL: "https://a"})

	got, err := reg.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"$schema":"s","mcpServers":{"a":{"type":"sse","url":"https://a"}},"owner":"me"}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestRegistry_Clone(t *testing.T) {
	reg := New()
	reg.Set("a", &mcp.Stdio{Command: "node", Env: map[string]string{"K": "v"}})

	cp := reg.Clone()
	cp.Set("b", &mcp.SSE{URL: "https://b"})
	def, _ := cp.Get("a")
	def.(*mcp.Stdio).Env["K"] = "changed"

	if reg.Has("b") {
		t.Error("clone shares server map")
	}
	var names []string
	for name := range cp.All() {
		names = append(names, name)
	}
	if diff := cmp.Diff([]string{"a", "b"}, names); diff != "" {
		t.Errorf("clone order mismatch (-want +got):\n%s", diff)
	}
	orig, _ := reg.Get("a")
	if orig.(*mcp.Stdio).Env["K"] != "v" {
		t.Error("clone shares definitions")
	}
}
