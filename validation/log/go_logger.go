package log

import (
	"context"
	"fmt"
	stdlog "log"
	"strings"
)

// GoLogger is the Go built-in (log) implementation of the Logger interface.
// It is the dependency-free default; hosts that want structured output plug
// the zap adapter instead.
//
// All string field values and messages are sanitized to prevent log
// injection (CWE-117).
type GoLogger struct {
	// Level is the verbosity ceiling; see the Level constants.
	Level Level

	fields []Field
	prefix string
}

// Log writes the event through the standard library logger when the level is
// enabled.
func (l *GoLogger) Log(_ context.Context, level Level, msg string, fields ...Field) {
	if !l.Enabled(level) {
		return
	}

	stdlog.Print(l.render(level, msg, fields))
}

// With returns a child logger with additional structured fields.
//
//nolint:ireturn
func (l *GoLogger) With(fields ...Field) Logger {
	if l == nil {
		return &GoLogger{}
	}

	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, l.qualify(sanitizeFields(fields))...)

	return &GoLogger{Level: l.Level, fields: merged, prefix: l.prefix}
}

// WithGroup returns a child logger that prefixes subsequent field keys with
// the group name.
//
//nolint:ireturn
func (l *GoLogger) WithGroup(name string) Logger {
	if l == nil {
		return &GoLogger{}
	}

	if name == "" {
		return l
	}

	return &GoLogger{Level: l.Level, fields: l.fields, prefix: l.prefix + name + "."}
}

// Enabled reports whether the given level is within the verbosity ceiling.
func (l *GoLogger) Enabled(level Level) bool {
	if l == nil {
		return false
	}

	return l.Level >= level
}

// Sync is a no-op for the standard library backend.
func (l *GoLogger) Sync(_ context.Context) error { return nil }

func (l *GoLogger) qualify(fields []Field) []Field {
	if l.prefix == "" {
		return fields
	}

	qualified := make([]Field, len(fields))
	for i, field := range fields {
		qualified[i] = field
		qualified[i].Key = l.prefix + field.Key
	}

	return qualified
}

func (l *GoLogger) render(level Level, msg string, fields []Field) string {
	parts := make([]string, 0, 3)
	parts = append(parts, fmt.Sprintf("[%s]", level))

	all := make([]Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, l.qualify(sanitizeFields(fields))...)

	if rendered := renderFields(all); rendered != "" {
		parts = append(parts, rendered)
	}

	parts = append(parts, sanitizeString(msg))

	return strings.Join(parts, " ")
}

func renderFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s=%v", field.Key, field.Value)
	}

	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
