package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/mcpsync/internal/cli/prompt"
	"github.com/thoreinstein/mcpsync/internal/errors"
)

const mixedRegistry = `{"mcpServers":{
  "fs":{"type":"stdio","command":"npx","args":["-y","server-fs"]},
  "remote":{"type":"http","url":"https://api.example.com/mcp"},
  "git":{"type":"stdio","command":"uvx","args":["mcp-server-git"]}
}}`

func TestInteractive_ConfigureDesktop(t *testing.T) {
	t.Parallel()

	f := newFixture(t, mixedRegistry, "", `{"mcpServers":{"git":{"command":"uvx","args":["mcp-server-git"]}},"globalShortcut":"Alt+Space"}`)

	p := newMockPrompter(t)
	p.On("SelectOne", mock.Anything, "Which client do you want to configure?", mock.Anything).
		Return(func(_ context.Context, _ string, opts []prompt.Option) (string, error) {
			require.Len(t, opts, 2)
			assert.Equal(t, "Claude Code", opts[0].Label)
			assert.Equal(t, "desktop", opts[1].Value)
			return "desktop", nil
		}).Once()
	p.On("SelectMany", mock.Anything, "Select MCP servers to enable for Claude Desktop:", mock.Anything).
		Return(func(_ context.Context, _ string, opts []prompt.Option) ([]string, error) {
			// Sorted, remote servers filtered out, current state pre-checked.
			want := []prompt.Option{
				{Label: "fs (stdio)", Value: "fs"},
				{Label: "git (stdio)", Value: "git", Checked: true},
			}
			assert.Equal(t, want, opts)
			return []string{"fs"}, nil
		}).Once()

	require.NoError(t, f.app(p).Interactive(testContext(t)))

	desktop := servers(t, f.desktop)
	assert.Len(t, desktop, 1)
	assert.Equal(t, map[string]any{"command": "npx", "args": []any{"-y", "server-fs"}}, desktop["fs"])

	out := f.out.String()
	assert.Contains(t, out, "✅ Found 3 servers in registry")
	assert.Contains(t, out, "Claude Desktop: 1 servers enabled")
	assert.Contains(t, out, "💡 Restart Claude Desktop to apply changes.")
}

func TestInteractive_ConfigureCodeNoneSelected(t *testing.T) {
	t.Parallel()

	f := newFixture(t, mixedRegistry, `{"mcpServers":{"fs":{"type":"stdio","command":"npx","args":["-y","server-fs"]}},"theme":"dark"}`, "")

	p := newMockPrompter(t)
	p.On("SelectOne", mock.Anything, mock.Anything, mock.Anything).Return("code", nil).Once()
	p.On("SelectMany", mock.Anything, mock.Anything, mock.Anything).
		Return(func(_ context.Context, _ string, opts []prompt.Option) ([]string, error) {
			assert.Len(t, opts, 3, "code supports every transport")
			return nil, nil
		}).Once()

	require.NoError(t, f.app(p).Interactive(testContext(t)))

	assert.Empty(t, servers(t, f.code))
	assert.NotContains(t, f.out.String(), "Restart")
}

func TestInteractive_EmptyRegistry(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", "", "")

	require.NoError(t, f.app(newMockPrompter(t)).Interactive(testContext(t)))
	assert.Contains(t, f.out.String(), "No MCP servers found in any configuration.")
}

func TestInteractive_NoCompatibleServers(t *testing.T) {
	t.Parallel()

	f := newFixture(t, `{"mcpServers":{"remote":{"type":"sse","url":"https://x/sse"}}}`, "", "")

	p := newMockPrompter(t)
	p.On("SelectOne", mock.Anything, mock.Anything, mock.Anything).Return("desktop", nil).Once()

	require.NoError(t, f.app(p).Interactive(testContext(t)))

	out := f.out.String()
	assert.Contains(t, out, "No compatible MCP servers found for Claude Desktop.")
	assert.Contains(t, out, "Claude Desktop only supports stdio servers.")
	assert.NoFileExists(t, f.desktop)
}

func TestInteractive_CancelledSelection(t *testing.T) {
	t.Parallel()

	f := newFixture(t, mixedRegistry, "", "")

	p := newMockPrompter(t)
	p.On("SelectOne", mock.Anything, mock.Anything, mock.Anything).Return("code", nil).Once()
	p.On("SelectMany", mock.Anything, mock.Anything, mock.Anything).Return(nil, prompt.ErrCancelled).Once()

	err := f.app(p).Interactive(testContext(t))
	assert.True(t, errors.Is(err, prompt.ErrCancelled))
	assert.NoFileExists(t, f.code)
}
