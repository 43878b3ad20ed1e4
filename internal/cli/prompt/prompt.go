// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"context"

	"github.com/thoreinstein/mcpsync/internal/errors"
)

// Sentinel errors for prompts.
var (
	// ErrCancelled is returned when the user interrupts a prompt with
	// Ctrl+C, Esc or end of input.
	ErrCancelled = errors.ErrCancelled

	// ErrNoOptions is returned when a selection prompt has nothing to offer.
	ErrNoOptions = errors.New("no options to select from")
)

// Option is a labeled choice. Checked marks the initial state of a
// multi-select option and is ignored by SelectOne.
type Option struct {
	Label   string
	Value   string
	Checked bool
}

// Prompter asks the user questions. Every method blocks until the user
// answers or the prompt is cancelled, in which case ErrCancelled is returned.
type Prompter interface {
	// SelectOne returns the Value of the chosen option.
	SelectOne(ctx context.Context, message string, options []Option) (string, error)

	// SelectMany returns the Values of the checked options in option order.
	SelectMany(ctx context.Context, message string, options []Option) ([]string, error)

	// Confirm asks a yes/no question. def is used when the user just presses Enter.
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}
