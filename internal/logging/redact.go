package logging

import (
	"log/slog"
	"strings"

	"github.com/thoreinstein/mcpsync/internal/redact"
)

// RedactAttr masks secrets in a. It has the signature of
// slog.HandlerOptions.ReplaceAttr.
//
//   - env and headers maps are masked entry by entry
//   - url values lose their embedded password
//   - any other value whose key or content looks like a token is masked
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	switch strings.ToLower(a.Key) {
	case "env", "headers":
		if m, ok := v.Any().(map[string]string); ok {
			return slog.Any(a.Key, redact.Map(m))
		}
	case "url":
		if v.Kind() == slog.KindString {
			return slog.String(a.Key, redact.URL(v.String()))
		}
	}

	if v.Kind() != slog.KindString {
		if redact.ShouldMask(a.Key) && v.Kind() != slog.KindGroup {
			return slog.String(a.Key, redact.MaskValue(v.String()))
		}
		return slog.Attr{Key: a.Key, Value: v}
	}
	if s := v.String(); redact.ShouldMask(a.Key) || redact.ContainsTokenPrefix(s) {
		return slog.String(a.Key, redact.MaskValue(s))
	}
	return slog.Attr{Key: a.Key, Value: v}
}
