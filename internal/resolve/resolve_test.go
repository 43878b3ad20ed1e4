package resolve

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/mcpsync/internal/cli/prompt"
	"github.com/thoreinstein/mcpsync/internal/client"
	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/logging"
	"github.com/thoreinstein/mcpsync/internal/mcp"
	"github.com/thoreinstein/mcpsync/internal/reconcile"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	return logging.NewContext(context.Background(), logging.ForTest(t))
}

func githubConflict() reconcile.Conflict {
	return reconcile.Conflict{
		Name:     "github",
		Registry: &mcp.Stdio{Command: "npx", Args: []string{"-y", "server-github"}, Env: map[string]string{"GITHUB_TOKEN": "ghp_registry1111"}},
		Client:   &mcp.Stdio{Command: "docker", Args: []string{"run", "github-mcp"}, Env: map[string]string{"GITHUB_TOKEN": "ghp_client2222"}},
		Source:   client.Code,
	}
}

func TestResolve_Choices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		choice      Choice
		wantUpdates int
	}{
		{KeepRegistry, 0},
		{UseClient, 1},
		{Skip, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.choice), func(t *testing.T) {
			t.Parallel()

			p := newMockPrompter(t)
			p.On("SelectOne", mock.Anything, "How should 'github' be resolved?", mock.Anything).
				Return(string(tt.choice), nil)

			var out bytes.Buffer
			updates, err := New(p, &out).Resolve(testContext(t), []reconcile.Conflict{githubConflict()})
			require.NoError(t, err)
			require.Len(t, updates, tt.wantUpdates)

			if tt.wantUpdates == 1 {
				assert.Equal(t, "github", updates[0].Name)
				assert.Equal(t, "docker", updates[0].Definition.(*mcp.Stdio).Command)
			}
		})
	}
}

func TestResolve_OptionsOffered(t *testing.T) {
	t.Parallel()

	c := githubConflict()
	c.Source = client.Desktop

	p := newMockPrompter(t)
	p.On("SelectOne", mock.Anything, mock.Anything, mock.Anything).
		Return(func(_ context.Context, _ string, opts []prompt.Option) (string, error) {
			require.Len(t, opts, 3)
			assert.Equal(t, string(KeepRegistry), opts[0].Value)
			assert.Equal(t, string(UseClient), opts[1].Value)
			assert.Equal(t, "Use Claude Desktop version", opts[1].Label)
			assert.Equal(t, string(Skip), opts[2].Value)
			return string(Skip), nil
		})

	var out bytes.Buffer
	_, err := New(p, &out).Resolve(testContext(t), []reconcile.Conflict{c})
	require.NoError(t, err)
}

func TestResolve_MasksSecrets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		showSecrets bool
		want        string
		notWant     string
	}{
		{"masked by default", false, "GITHUB_TOKEN=****1111", "ghp_registry1111"},
		{"shown on request", true, "GITHUB_TOKEN=ghp_registry1111", "****1111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newMockPrompter(t)
			p.On("SelectOne", mock.Anything, mock.Anything, mock.Anything).Return(string(KeepRegistry), nil)

			var out bytes.Buffer
			_, err := New(p, &out, WithShowSecrets(tt.showSecrets)).
				Resolve(testContext(t), []reconcile.Conflict{githubConflict()})
			require.NoError(t, err)

			text := out.String()
			assert.Contains(t, text, "'github' differs between the registry and Claude Code")
			assert.Contains(t, text, "command: docker")
			assert.Contains(t, text, tt.want)
			assert.NotContains(t, text, tt.notWant)
		})
	}
}

func TestResolve_MultipleConflicts(t *testing.T) {
	t.Parallel()

	second := reconcile.Conflict{
		Name:     "search",
		Registry: &mcp.HTTP{URL: "https://a.example.com/mcp"},
		Client:   &mcp.SSE{URL: "https://b.example.com/sse"},
		Source:   client.Code,
	}

	p := newMockPrompter(t)
	p.On("SelectOne", mock.Anything, "How should 'github' be resolved?", mock.Anything).Return(string(Skip), nil).Once()
	p.On("SelectOne", mock.Anything, "How should 'search' be resolved?", mock.Anything).Return(string(UseClient), nil).Once()

	var out bytes.Buffer
	updates, err := New(p, &out).Resolve(testContext(t), []reconcile.Conflict{githubConflict(), second})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "search", updates[0].Name)
	assert.IsType(t, &mcp.SSE{}, updates[0].Definition)
	assert.Contains(t, out.String(), "Conflict 2/2")
}

func TestResolve_CancelStopsPass(t *testing.T) {
	t.Parallel()

	p := newMockPrompter(t)
	p.On("SelectOne", mock.Anything, mock.Anything, mock.Anything).Return("", prompt.ErrCancelled).Once()

	var out bytes.Buffer
	conflicts := []reconcile.Conflict{githubConflict(), githubConflict()}
	updates, err := New(p, &out).Resolve(testContext(t), conflicts)

	require.Error(t, err)
	assert.True(t, errors.Is(err, prompt.ErrCancelled))
	assert.Equal(t, errors.ExitCancelled, errors.ExitCode(err))
	assert.Nil(t, updates)
}

func TestResolve_CancelledContext(t *testing.T) {
	t.Parallel()

	p := newMockPrompter(t)

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	var out bytes.Buffer
	_, err := New(p, &out).Resolve(ctx, []reconcile.Conflict{githubConflict()})
	assert.True(t, errors.Is(err, prompt.ErrCancelled))
}

func TestResolve_NoConflicts(t *testing.T) {
	t.Parallel()

	p := newMockPrompter(t)
	var out bytes.Buffer

	updates, err := New(p, &out).Resolve(testContext(t), nil)
	require.NoError(t, err)
	assert.Empty(t, updates)
	assert.Empty(t, out.String())
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		def  mcp.Definition
		want []string
	}{
		{
			name: "stdio",
			def:  &mcp.Stdio{Command: "npx", Args: []string{"-y", "pkg"}, Env: map[string]string{"B": "2", "A": "1"}},
			want: []string{"type:    stdio", "command: npx", "args:    -y pkg", "env:     A=1", "         B=2"},
		},
		{
			name: "bare stdio",
			def:  &mcp.Stdio{Command: "server"},
			want: []string{"type:    stdio", "command: server"},
		},
		{
			name: "http",
			def:  &mcp.HTTP{URL: "https://x/mcp", Headers: map[string]string{"Accept": "json"}},
			want: []string{"type:    http", "url:     https://x/mcp", "headers: Accept=json"},
		},
		{
			name: "sse",
			def:  &mcp.SSE{URL: "https://x/sse"},
			want: []string{"type:    sse", "url:     https://x/sse"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Describe(tt.def))
		})
	}
}
