// Package app hosts a motionmark scene, either in a gogpu window or
// headless on an offscreen gg.Context.
package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/gogpu/motionmark"
	"github.com/gogpu/motionmark/internal/config"
)

// Option configures a host.
type Option func(*options)

type options struct {
	logger *slog.Logger
	now    func() time.Time
}

// WithLogger sets the logger used for lifecycle and stats messages.
// The default is motionmark.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithClock replaces time.Now for frame timing.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = motionmark.Logger()
	}
	return o
}

// Run starts the host selected by cfg.Headless. Headless runs print their
// report to out.
func Run(ctx context.Context, cfg config.Config, out io.Writer, opts ...Option) error {
	if !cfg.Headless {
		return NewWindow(cfg, opts...).Run(ctx)
	}
	report, err := NewHeadless(cfg, opts...).Run(ctx)
	if err != nil {
		return err
	}
	return WriteReport(out, report)
}

func newScene(cfg config.Config) *motionmark.Scene {
	opts := []motionmark.SceneOption{
		motionmark.WithComplexity(cfg.Complexity),
		motionmark.WithViewport(cfg.Width, cfg.Height),
	}
	if cfg.Seed != 0 {
		opts = append(opts, motionmark.WithSeed(cfg.Seed))
	}
	return motionmark.NewScene(opts...)
}

func logStats(l *slog.Logger, s motionmark.FrameStats) {
	l.Info("motionmark: stats",
		"fps", s.FPS,
		"frame_time", s.FrameTime,
		"complexity", s.Complexity,
		"elements", s.Elements)
}
