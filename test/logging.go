// Package test holds helpers shared by scapdb tests.
package test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/quay/claircore/toolkit/log"
)

var (
	// Install swaps the default logger for one that routes records to the
	// handler carried in each record's Context. It runs once per process.
	install = sync.OnceFunc(func() {
		slog.SetDefault(slog.New(new(router)))
	})

	getwd = sync.OnceValue(func() string {
		dir, err := os.Getwd()
		if err != nil {
			panic(err)
		}
		return dir
	})

	modprefix = sync.OnceValue(func() string {
		if info, ok := debug.ReadBuildInfo(); ok {
			return info.Main.Path + "/"
		}
		return ""
	})
)

type handlerKey struct{}

var _ slog.Handler = router(nil)

// Router implements [slog.Handler] by looking up the test's handler in the
// [context.Context] of every call. WithAttrs and WithGroup are recorded and
// replayed on that handler. Records logged without one are dropped.
type router []func(slog.Handler) slog.Handler

func (r router) lookup(ctx context.Context) (slog.Handler, bool) {
	h, ok := ctx.Value(handlerKey{}).(slog.Handler)
	return h, ok
}

// Enabled implements [slog.Handler].
func (r router) Enabled(ctx context.Context, l slog.Level) bool {
	h, ok := r.lookup(ctx)
	return ok && h.Enabled(ctx, l)
}

// Handle implements [slog.Handler].
func (r router) Handle(ctx context.Context, rec slog.Record) error {
	h, ok := r.lookup(ctx)
	if !ok {
		return nil
	}
	for _, op := range r {
		h = op(h)
	}
	if v, ok := ctx.Value(log.AttrsKey).(slog.Value); ok {
		rec.AddAttrs(v.Group()...)
	}
	return h.Handle(ctx, rec)
}

// WithAttrs implements [slog.Handler].
func (r router) WithAttrs(attrs []slog.Attr) slog.Handler {
	return append(r[:len(r):len(r)], func(h slog.Handler) slog.Handler {
		return h.WithAttrs(attrs)
	})
}

// WithGroup implements [slog.Handler].
func (r router) WithGroup(name string) slog.Handler {
	return append(r[:len(r):len(r)], func(h slog.Handler) slog.Handler {
		return h.WithGroup(name)
	})
}

// Logging returns a [context.Context] that makes the default [slog.Logger]
// write to the output of the provided [testing.TB] at debug level.
//
// Times are reported relative to the call.
func Logging(t testing.TB, parent ...context.Context) context.Context {
	install()
	ctx := context.Background()
	if len(parent) > 0 {
		ctx = parent[0]
	}
	start := time.Now()
	h := slog.NewTextHandler(logOutput(t), &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(g []string, a slog.Attr) slog.Attr {
			if g != nil {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.String(slog.TimeKey, "+"+time.Since(start).String())
			case slog.SourceKey:
				src, ok := a.Value.Any().(*slog.Source)
				if !ok {
					return a
				}
				if src.Function != "" {
					return slog.String(slog.SourceKey, strings.TrimPrefix(src.Function, modprefix()))
				}
				f := src.File
				if rel, err := filepath.Rel(getwd(), f); err == nil && rel != "" {
					f = rel
				}
				return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", f, src.Line))
			}
			return a
		},
	})
	return context.WithValue(ctx, handlerKey{}, h)
}
