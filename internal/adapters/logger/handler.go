package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/yaac/internal/ui/output"
	"go.trai.ch/yaac/internal/ui/style"
)

// PrettyHandler is a slog.Handler producing one coloured line per record.
// Warnings and errors carry an icon; attributes follow as key=value pairs.
type PrettyHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	styles style.Styles
	level  slog.Leveler
	// attrs are pre-rendered so groups opened later do not apply to them.
	attrs []string
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		mu:     &sync.Mutex{},
		w:      w,
		styles: style.New(output.NewRenderer(w)),
		level:  level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var msg string
	var look lipgloss.Style

	switch {
	case r.Level >= slog.LevelError:
		msg = style.Cross + " " + r.Message
		look = h.styles.Error
	case r.Level >= slog.LevelWarn:
		msg = style.Warning + " " + r.Message
		look = h.styles.Warning
	default:
		msg = r.Message
		look = h.styles.Muted
	}

	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	parts = append(parts, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, formatAttr(h.group, attr))
		return true
	})

	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}

	styled := style.RenderLines(look, msg)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, styled+"\n")

	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rendered := make([]string, len(h.attrs), len(h.attrs)+len(attrs))
	copy(rendered, h.attrs)
	for _, attr := range attrs {
		rendered = append(rendered, formatAttr(h.group, attr))
	}

	return &PrettyHandler{
		mu:     h.mu,
		w:      h.w,
		styles: h.styles,
		level:  h.level,
		attrs:  rendered,
		group:  h.group,
	}
}

// WithGroup returns a new Handler qualifying later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	group := name
	if h.group != "" {
		group = h.group + "." + name
	}

	return &PrettyHandler{
		mu:     h.mu,
		w:      h.w,
		styles: h.styles,
		level:  h.level,
		attrs:  h.attrs,
		group:  group,
	}
}

// formatAttr renders one attribute. Keys are prefixed with the group path
// and values that would be ambiguous unquoted are quoted.
func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}

	value := attr.Value.Resolve().String()
	if value == "" || strings.ContainsAny(value, " \t\n\"=") {
		value = strconv.Quote(value)
	}
	return key + "=" + value
}
