// Package errors provides error handling conventions for the mcpsync CLI.
//
// This package wraps github.com/cockroachdb/errors, defines sentinel errors
// for the failure taxonomy of the sync engine, an ExitError type for CLI exit
// code handling, and exit code constants following standard Unix conventions.
//
// # Failure Taxonomy
//
//   - [ErrSourceUnreadable]: a config document is missing or malformed. It is
//     recovered locally by substituting an empty default and logging a warning.
//   - [ErrDestinationWrite]: a document could not be persisted. Fatal to the
//     current operation and surfaced to the caller.
//   - [ErrPartialApply]: one client write failed while the other may have
//     succeeded. Each outcome is reported separately.
//   - [ErrCancelled]: the user interrupted a prompt. The pass stops without
//     further writes and the process exits with ExitCancelled.
//
// Use [Mark] to tag an I/O error with a sentinel without losing its message:
//
//	err = errors.Mark(errors.Wrapf(err, "writing %s", path), errors.ErrDestinationWrite)
//	if errors.Is(err, errors.ErrDestinationWrite) {
//	    // fatal
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//   - ExitCancelled (130): An interactive prompt was interrupted
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion
// for CLI applications. [ExitCode] maps any error to the code the process
// should exit with.
package errors
