package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers. Styles are bound to
// a renderer for the output writer, so color is dropped automatically when
// the writer is not a terminal.
type palette struct {
	key, str, num, dur, ts lipgloss.Style
	yes, no, null          lipgloss.Style
	trace, debug, info     lipgloss.Style
	warn, err              lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		dur:   fg("5"),
		ts:    fg("4"),
		yes:   fg("2"),
		no:    fg("1"),
		null:  fg("8"),
		trace: fg("8").Bold(true),
		debug: fg("4").Bold(true),
		info:  fg("2").Bold(true),
		warn:  fg("3").Bold(true),
		err:   fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// value renders a resolved, non-group value.
func (p palette) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())

	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")

	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())

	case slog.KindTime:
		return p.ts.Render(v.Time().Format(time.RFC3339))

	default:
		if v.Any() == nil {
			return p.null.Render("null")
		}

		return p.str.Render(fmt.Sprint(v.Any()))
	}
}

// field is a flattened attribute: groups are joined into a dotted key.
type field struct {
	key string
	val slog.Value
}

// flatten resolves a and appends its leaf fields under prefix.
func flatten(fields []field, prefix []string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() != slog.KindGroup {
		key := strings.Join(append(prefix[:len(prefix):len(prefix)], a.Key), ".")

		return append(fields, field{key: key, val: a.Value})
	}

	if a.Key != "" {
		prefix = append(prefix[:len(prefix):len(prefix)], a.Key)
	}

	for _, g := range a.Value.Group() {
		fields = flatten(fields, prefix, g)
	}

	return fields
}

// prettyCore holds the state shared by the text and JSON pretty handlers.
type prettyCore struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    palette
	groups []string
	attrs  []field
}

func newPrettyCore(w io.Writer, opts *slog.HandlerOptions) prettyCore {
	return prettyCore{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
		pal:  newPalette(w),
	}
}

func (c prettyCore) enabled(level slog.Level) bool {
	threshold := slog.LevelInfo
	if c.opts.Level != nil {
		threshold = c.opts.Level.Level()
	}

	return level >= threshold
}

func (c prettyCore) withAttrs(attrs []slog.Attr) prettyCore {
	next := c
	next.attrs = c.attrs[:len(c.attrs):len(c.attrs)]

	for _, a := range attrs {
		next.attrs = flatten(next.attrs, c.groups, c.replace(a))
	}

	return next
}

func (c prettyCore) withGroup(name string) prettyCore {
	if name == "" {
		return c
	}

	next := c
	next.groups = append(c.groups[:len(c.groups):len(c.groups)], name)

	return next
}

func (c prettyCore) replace(a slog.Attr) slog.Attr {
	if c.opts.ReplaceAttr == nil || a.Value.Kind() == slog.KindGroup {
		return a
	}

	return c.opts.ReplaceAttr(c.groups, a)
}

// fields returns the header and attribute fields of r in output order.
func (c prettyCore) fields(r slog.Record) []field {
	fields := make([]field, 0, 4+len(c.attrs)+r.NumAttrs())

	builtin := func(a slog.Attr) {
		if c.opts.ReplaceAttr != nil {
			a = c.opts.ReplaceAttr(nil, a)
		}

		fields = flatten(fields, nil, a)
	}

	if !r.Time.IsZero() {
		builtin(slog.Time(slog.TimeKey, r.Time))
	}

	builtin(slog.Any(slog.LevelKey, r.Level))

	if c.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			builtin(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	builtin(slog.String(slog.MessageKey, r.Message))

	fields = append(fields, c.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = flatten(fields, c.groups, c.replace(a))

		return true
	})

	return fields
}

func (c prettyCore) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.w.Write(buf.Bytes())

	return err
}

// renderField styles the value of f, giving the level its own color.
func (c prettyCore) renderField(f field, level slog.Level) string {
	if f.key == slog.LevelKey {
		return c.pal.level(level).Render(f.val.String())
	}

	return c.pal.value(f.val)
}

// prettyTextHandler writes one colorized key=value line per record.
type prettyTextHandler struct{ prettyCore }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{newPrettyCore(w, opts)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for i, f := range h.fields(r) {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(f.key))
		buf.WriteByte('=')
		buf.WriteString(h.renderField(f, r.Level))
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler writes each record as an indented, colorized object.
// Values are not quoted, so the output is for reading, not for decoding.
type prettyJSONHandler struct{ prettyCore }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyCore(w, opts)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	for i, f := range h.fields(r) {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.pal.key.Render(f.key))
		buf.WriteString(": ")
		buf.WriteString(h.renderField(f, r.Level))
	}

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
