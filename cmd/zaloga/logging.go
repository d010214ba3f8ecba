package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// levelRouter is a slog.Handler that sends records at or above level to the
// log file and ERROR+ to stderr. The shell owns stdout, so nothing is logged
// there.
type levelRouter struct {
	level  slog.Level
	file   slog.Handler // nil when no log file is configured
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	if level >= slog.LevelError {
		return true
	}
	return lr.file != nil && level >= lr.level
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if lr.file != nil && r.Level >= lr.level {
		if err := lr.file.Handle(ctx, r); err != nil {
			return err
		}
	}
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return nil
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &levelRouter{level: lr.level, stderr: lr.stderr.WithAttrs(attrs)}
	if lr.file != nil {
		next.file = lr.file.WithAttrs(attrs)
	}
	return next
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	next := &levelRouter{level: lr.level, stderr: lr.stderr.WithGroup(name)}
	if lr.file != nil {
		next.file = lr.file.WithGroup(name)
	}
	return next
}

// newLevelRouter builds the handler. file may be nil.
func newLevelRouter(level slog.Level, file, stderr io.Writer) *levelRouter {
	lr := &levelRouter{
		level:  level,
		stderr: slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	if file != nil {
		lr.file = slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	}
	return lr
}

// setupLogger installs the default logger. If logPath is non-empty, records
// at or above level are appended to that file. Returns a cleanup function that
// restores the previous logger and closes the log file (if opened).
func setupLogger(logPath string, level slog.Level) (func(), error) {
	prev := slog.Default()
	var file io.Writer
	cleanup := func() { slog.SetDefault(prev) }

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() {
			slog.SetDefault(prev)
			f.Close()
		}
		file = f
	}

	slog.SetDefault(slog.New(newLevelRouter(level, file, os.Stderr)))
	return cleanup, nil
}
