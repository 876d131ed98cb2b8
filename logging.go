package main

import (
	"context"
	"io"
	"strings"
	"sync"

	"golang.org/x/exp/slog"
)

// LogHandler writes single-line "time level message key=value ..." records.
type LogHandler struct {
	inner slog.Handler
	mu    *sync.Mutex
	out   io.Writer
}

func NewLogHandler(out io.Writer, opts *slog.HandlerOptions) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &LogHandler{
		out: out,
		inner: slog.NewTextHandler(out, &slog.HandlerOptions{
			Level:     opts.Level,
			AddSource: opts.AddSource,
		}),
		mu: &sync.Mutex{},
	}
}

func (self *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return self.inner.Enabled(ctx, level)
}

func (self *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{inner: self.inner.WithAttrs(attrs), out: self.out, mu: self.mu}
}

func (self *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{inner: self.inner.WithGroup(name), out: self.out, mu: self.mu}
}

func (self *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	parts := []string{r.Time.Format("2006/01/02 15:04:05"), r.Level.String(), r.Message}
	if r.NumAttrs() != 0 {
		r.Attrs(func(a slog.Attr) bool {
			parts = append(parts, a.Key+"="+a.Value.String())
			return true
		})
	}
	line := strings.Join(parts, " ") + "\n"

	self.mu.Lock()
	defer self.mu.Unlock()
	_, err := self.out.Write([]byte(line))
	return err
}
