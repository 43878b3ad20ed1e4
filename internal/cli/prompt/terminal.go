package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"golang.org/x/term"

	"github.com/thoreinstein/mcpsync/internal/errors"
)

// Terminal is the Prompter used by the CLI. On an interactive terminal
// SelectOne opens a fuzzy finder; everything else is a numbered line prompt.
//
// Reads happen on a separate goroutine so a cancelled context interrupts a
// pending prompt. After ErrCancelled the Terminal must not be reused.
type Terminal struct {
	reader *bufio.Reader
	writer io.Writer
	fuzzy  bool
}

// NewTerminal creates a Terminal using stdin and stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		reader: bufio.NewReader(os.Stdin),
		writer: os.Stdout,
		fuzzy:  term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// NewTerminalWithIO creates a line-mode Terminal with custom reader and writer for testing.
func NewTerminalWithIO(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// SelectOne prompts the user to choose one option.
//
// Returns:
//   - ErrNoOptions if the list is empty
//   - The selected value; empty input picks the first option
//   - ErrCancelled if input ends or ctx is cancelled
//
// Invalid input is reported and the question asked again.
func (t *Terminal) SelectOne(ctx context.Context, message string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}
	if t.fuzzy {
		return t.findOne(ctx, message, options)
	}

	fmt.Fprintln(t.writer, message)
	for i, o := range options {
		fmt.Fprintf(t.writer, "  [%d] %s\n", i+1, o.Label)
	}

	for {
		fmt.Fprint(t.writer, "Select [1]: ")
		input, err := t.readLine(ctx)
		if err != nil {
			return "", err
		}
		if input == "" {
			return options[0].Value, nil
		}
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintf(t.writer, "Invalid selection %q, enter a number between 1 and %d.\n", input, len(options))
			continue
		}
		return options[n-1].Value, nil
	}
}

func (t *Terminal) findOne(ctx context.Context, message string, options []Option) (string, error) {
	idx, err := fuzzyfinder.Find(
		options,
		func(i int) string { return options[i].Label },
		fuzzyfinder.WithContext(ctx),
		fuzzyfinder.WithHeader(message),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) || ctx.Err() != nil {
			return "", ErrCancelled
		}
		return "", errors.Wrap(err, "selection failed")
	}
	return options[idx].Value, nil
}

// SelectMany prompts the user to check any number of options. The current
// selection is shown with [x]; pressing Enter keeps it.
//
// Accepted input: numbers and ranges separated by spaces or commas
// ("1 3", "2-4"), "all", or "none".
func (t *Terminal) SelectMany(ctx context.Context, message string, options []Option) ([]string, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}

	fmt.Fprintln(t.writer, message)
	for i, o := range options {
		mark := " "
		if o.Checked {
			mark = "x"
		}
		fmt.Fprintf(t.writer, "  [%s] %d. %s\n", mark, i+1, o.Label)
	}

	for {
		fmt.Fprint(t.writer, "Enter numbers to enable (e.g. 1 3 or 2-4, all, none) [keep]: ")
		input, err := t.readLine(ctx)
		if err != nil {
			return nil, err
		}

		checked, err := parseChoices(input, options)
		if err != nil {
			fmt.Fprintf(t.writer, "Invalid selection: %v\n", err)
			continue
		}

		var values []string
		for i, o := range options {
			if checked[i] {
				values = append(values, o.Value)
			}
		}
		return values, nil
	}
}

// parseChoices turns a selection line into a checked flag per option.
func parseChoices(input string, options []Option) ([]bool, error) {
	checked := make([]bool, len(options))

	switch strings.ToLower(input) {
	case "":
		for i, o := range options {
			checked[i] = o.Checked
		}
		return checked, nil
	case "all", "a":
		for i := range checked {
			checked[i] = true
		}
		return checked, nil
	case "none", "n":
		return checked, nil
	}

	fields := strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' })
	for _, f := range fields {
		lo, hi, isRange := strings.Cut(f, "-")
		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, errors.Newf("%q is not a number", f)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(hi); err != nil {
				return nil, errors.Newf("%q is not a range", f)
			}
		}
		if start < 1 || end > len(options) || start > end {
			return nil, errors.Newf("%s is out of range [1-%d]", f, len(options))
		}
		for i := start; i <= end; i++ {
			checked[i-1] = true
		}
	}
	return checked, nil
}

// Confirm asks a yes/no question.
func (t *Terminal) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprintf(t.writer, "%s %s: ", message, hint)
		input, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(input) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(t.writer, "Please answer yes or no.")
		}
	}
}

// readLine reads one trimmed line, giving up when ctx is cancelled.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := t.reader.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(t.writer)
		return "", ErrCancelled
	case r := <-ch:
		line := strings.TrimSpace(r.line)
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				// A final line without a newline still counts.
				if line != "" {
					return line, nil
				}
				fmt.Fprintln(t.writer)
				return "", ErrCancelled
			}
			return "", errors.Wrap(r.err, "reading input")
		}
		return line, nil
	}
}
