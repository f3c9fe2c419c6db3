package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/samber/oops"
)

// Logger represents application logger.
type Logger struct {
	*slog.Logger
}

// New creates new Logger instance with the specified level.
func New(level int) *Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a Logger that writes text records to w.
func NewWithWriter(w io.Writer, level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}

// ErrorErr logs err at error level together with its outcome code and
// context when it is an oops error.
func (l *Logger) ErrorErr(msg string, err error, args ...any) {
	l.Logger.Error(msg, append(args, errorAttrs(err)...)...)
}

// WarnErr is ErrorErr at warn level.
func (l *Logger) WarnErr(msg string, err error, args ...any) {
	l.Logger.Warn(msg, append(args, errorAttrs(err)...)...)
}

func errorAttrs(err error) []any {
	if err == nil {
		return nil
	}
	attrs := []any{"error", err.Error()}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return attrs
	}
	if code := fmt.Sprint(oopsErr.Code()); code != "" && code != "<nil>" {
		attrs = append(attrs, "code", code)
	}
	for k, v := range oopsErr.Context() {
		if k == "public" {
			continue
		}
		attrs = append(attrs, k, v)
	}
	return attrs
}
