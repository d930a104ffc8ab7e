// Package logger builds the process slog.Logger: charmbracelet/log text for
// terminals or one JSON LogEntry per line.
package logger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	charmLog "github.com/charmbracelet/log"

	"tgwire/pkg/config"
	"tgwire/pkg/wireerr"
)

// LogEntry is one line of JSON log output.
type LogEntry struct {
	Level     string         `json:"level"`
	Timestamp string         `json:"timestamp"`
	Component string         `json:"component,omitempty"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
	Caller    string         `json:"caller,omitempty"`
}

var levels = map[string]slog.Level{
	"":        slog.LevelInfo,
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// New builds the process logger from cfg. Environment overrides are applied
// by config loading, not here.
func New(cfg config.LoggingConfig) (*slog.Logger, error) {
	return newWithWriter(cfg, os.Stderr)
}

func newWithWriter(cfg config.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]
	if !ok {
		return nil, fmt.Errorf("unsupported log level %q", cfg.Level)
	}

	switch format := strings.ToLower(strings.TrimSpace(cfg.Format)); format {
	case "", "text":
		return slog.New(charmLog.NewWithOptions(w, charmLog.Options{
			Level:           charmLevel(level),
			ReportTimestamp: true,
			ReportCaller:    cfg.AddSource,
			Formatter:       charmLog.TextFormatter,
		})), nil
	case "json":
		return slog.New(&entryHandler{
			level:     level,
			addSource: cfg.AddSource,
			out:       &lockedWriter{w: w},
		}), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
}

func charmLevel(level slog.Level) charmLog.Level {
	switch level {
	case slog.LevelDebug:
		return charmLog.DebugLevel
	case slog.LevelWarn:
		return charmLog.WarnLevel
	case slog.LevelError:
		return charmLog.ErrorLevel
	default:
		return charmLog.InfoLevel
	}
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) writeLine(line []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.w.Write(append(line, '\n'))
	return err
}

// entryHandler renders records as LogEntry lines. Attributes added through
// With are resolved once and copied into every entry.
type entryHandler struct {
	level     slog.Level
	addSource bool
	out       *lockedWriter
	component string
	fields    map[string]any
	prefix    string
}

func (h *entryHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *entryHandler) Handle(_ context.Context, record slog.Record) error {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	entry := LogEntry{
		Level:     strings.ToLower(record.Level.String()),
		Timestamp: ts.UTC().Format(time.RFC3339Nano),
		Component: h.component,
		Message:   record.Message,
	}

	fields := make(map[string]any, len(h.fields)+record.NumAttrs())
	for k, v := range h.fields {
		fields[k] = v
	}
	record.Attrs(func(attr slog.Attr) bool {
		if c, ok := h.add(fields, attr); ok {
			entry.Component = c
		}
		return true
	})
	if len(fields) > 0 {
		entry.Fields = fields
	}

	if src := record.Source(); h.addSource && src != nil && src.File != "" {
		entry.Caller = fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line)
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return h.out.writeLine(line)
}

// add stores attr in fields. A top-level string "component" attribute is
// reported back instead of stored.
func (h *entryHandler) add(fields map[string]any, attr slog.Attr) (string, bool) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return "", false
	}

	key := h.prefix + attr.Key
	if key == "component" && attr.Value.Kind() == slog.KindString {
		return attr.Value.String(), true
	}

	if err, ok := attr.Value.Any().(error); ok && attr.Value.Kind() == slog.KindAny {
		fields[key] = err.Error()
		// Wire errors carry a category and a field path worth filtering on.
		var werr *wireerr.Error
		if errors.As(err, &werr) {
			fields[key+"_category"] = string(werr.Category)
			if path := werr.PathString(); path != "" {
				fields[key+"_path"] = path
			}
		}
		return "", false
	}

	fields[key] = plain(attr.Value)
	return "", false
}

func plain(v slog.Value) any {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339Nano)
	case slog.KindGroup:
		group := make(map[string]any, len(v.Group()))
		for _, item := range v.Group() {
			group[item.Key] = plain(item.Value.Resolve())
		}
		return group
	default:
		return v.Any()
	}
}

func (h *entryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.fields = make(map[string]any, len(h.fields)+len(attrs))
	for k, v := range h.fields {
		next.fields[k] = v
	}
	for _, attr := range attrs {
		if c, ok := next.add(next.fields, attr); ok {
			next.component = c
		}
	}
	return &next
}

func (h *entryHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}
