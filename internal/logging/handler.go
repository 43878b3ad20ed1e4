package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler is a slog.Handler writing one colorized line per record:
//
//	15:04:05 LVL [client] server: message key=value ...
//
// The client and server parts appear only when the record, or the logger it
// came from, carries KeyClient or KeyServer outside any group.
type Handler struct {
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	noTime bool
	pal    *palette

	client string
	server string
	pre    []byte // attrs bound through WithAttrs, already rendered
	group  string // dotted prefix from WithGroup
}

type palette struct {
	time, key, subject *color.Color
	trace, debug       *color.Color
	info, warn, err    *color.Color
}

func newPalette() *palette {
	p := &palette{
		time:    color.New(color.FgHiBlack),
		key:     color.New(color.FgCyan),
		subject: color.New(color.Bold),
		trace:   color.New(color.FgHiBlack),
		debug:   color.New(color.FgMagenta),
		info:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.time, p.key, p.subject, p.trace, p.debug, p.info, p.warn, p.err} {
		c.EnableColor()
	}
	return p
}

// NewHandler creates a text handler. Colors are used only when out is a
// terminal that accepts them.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{out: out, mu: &sync.Mutex{}, level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	if SupportsColor(out) {
		h.pal = newPalette()
	}
	return h
}

// Enabled reports whether level meets the handler's minimum.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r as a single line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	client, server := h.client, h.server
	if h.group == "" {
		r.Attrs(func(a slog.Attr) bool {
			switch a.Key {
			case KeyClient:
				client = a.Value.Resolve().String()
			case KeyServer:
				server = a.Value.Resolve().String()
			}
			return true
		})
	}

	var buf bytes.Buffer
	if !h.noTime && !r.Time.IsZero() {
		buf.WriteString(h.paint(h.timeColor(), r.Time.Format(time.TimeOnly)))
		buf.WriteByte(' ')
	}
	buf.WriteString(h.paint(h.levelColor(r.Level), levelLabel(r.Level)))
	buf.WriteByte(' ')

	if client != "" {
		buf.WriteString("[" + client + "] ")
	}
	if server != "" {
		buf.WriteString(h.paint(h.subjectColor(), server) + ": ")
	}
	buf.WriteString(r.Message)
	buf.Write(h.pre)

	r.Attrs(func(a slog.Attr) bool {
		if h.group == "" && (a.Key == KeyClient || a.Key == KeyServer) {
			return true
		}
		h.appendAttr(&buf, h.group, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a = RedactAttr(nil, a)
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, inner, ga)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.paint(h.keyColor(), prefix+a.Key))
	buf.WriteByte('=')
	buf.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	if v.Kind() != slog.KindString {
		return v.String()
	}
	s := v.String()
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}

func levelLabel(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERR"
	case l >= slog.LevelWarn:
		return "WRN"
	case l >= slog.LevelInfo:
		return "INF"
	case l >= slog.LevelDebug:
		return "DBG"
	default:
		return "TRC"
	}
}

func (h *Handler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) levelColor(l slog.Level) *color.Color {
	if h.pal == nil {
		return nil
	}
	switch {
	case l >= slog.LevelError:
		return h.pal.err
	case l >= slog.LevelWarn:
		return h.pal.warn
	case l >= slog.LevelInfo:
		return h.pal.info
	case l >= slog.LevelDebug:
		return h.pal.debug
	default:
		return h.pal.trace
	}
}

func (h *Handler) timeColor() *color.Color {
	if h.pal == nil {
		return nil
	}
	return h.pal.time
}

func (h *Handler) keyColor() *color.Color {
	if h.pal == nil {
		return nil
	}
	return h.pal.key
}

func (h *Handler) subjectColor() *color.Color {
	if h.pal == nil {
		return nil
	}
	return h.pal.subject
}

// WithAttrs binds attrs to a new Handler. KeyClient and KeyServer outside a
// group replace the prefix instead of being rendered.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	nh := *h
	nh.pre = slices.Clone(h.pre)

	var buf bytes.Buffer
	for _, a := range attrs {
		if h.group == "" {
			switch a.Key {
			case KeyClient:
				nh.client = a.Value.Resolve().String()
				continue
			case KeyServer:
				nh.server = a.Value.Resolve().String()
				continue
			}
		}
		h.appendAttr(&buf, h.group, a)
	}
	nh.pre = append(nh.pre, buf.Bytes()...)
	return &nh
}

// WithGroup returns a Handler that qualifies later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.group = h.group + name + "."
	return &nh
}
