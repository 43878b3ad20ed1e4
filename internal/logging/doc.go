// Package logging provides structured logging for the mcpsync CLI using slog.
//
// Logs go to stderr and are meant for diagnostics: which servers were
// imported, which entries were rejected, which clients were written. Progress
// meant for the user (prompts, summaries) is printed to stdout by the
// commands instead.
//
// Records about one server in one client carry the [KeyClient] and
// [KeyServer] attributes. The text handler lifts them into a prefix:
//
//	14:02:11 WRN [desktop] remote: skipping server not supported by client type=http
//
// Both the text and the JSON handler pass every attribute through
// [RedactAttr], so env maps, header maps and URLs with credentials never
// reach a log in clear text.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// For tests, use [ForTest] to capture log output via the testing framework.
package logging
