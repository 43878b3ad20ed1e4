package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/thoreinstein/mcpsync/internal/cli/prompt"
)

// mockPrompter implements prompt.Prompter for testing. A Return value may be
// a function with the method's signature to compute the answer from the
// options shown.
type mockPrompter struct {
	mock.Mock
}

func newMockPrompter(t *testing.T) *mockPrompter {
	t.Helper()
	p := &mockPrompter{}
	p.Test(t)
	t.Cleanup(func() { p.AssertExpectations(t) })
	return p
}

func (m *mockPrompter) SelectOne(ctx context.Context, message string, options []prompt.Option) (string, error) {
	args := m.Called(ctx, message, options)
	if fn, ok := args.Get(0).(func(context.Context, string, []prompt.Option) (string, error)); ok {
		return fn(ctx, message, options)
	}
	return args.String(0), args.Error(1)
}

func (m *mockPrompter) SelectMany(ctx context.Context, message string, options []prompt.Option) ([]string, error) {
	args := m.Called(ctx, message, options)
	if fn, ok := args.Get(0).(func(context.Context, string, []prompt.Option) ([]string, error)); ok {
		return fn(ctx, message, options)
	}
	values, _ := args.Get(0).([]string)
	return values, args.Error(1)
}

func (m *mockPrompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	args := m.Called(ctx, message, def)
	return args.Bool(0), args.Error(1)
}
