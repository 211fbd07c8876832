package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/motionmark"
	"github.com/gogpu/motionmark/internal/config"
)

// Window runs the scene in a gogpu window, repainting at VSync while
// animating. Space pauses and resumes; Up/Down, +/- and the keypad
// equivalents step the complexity level.
type Window struct {
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewWindow creates a window host for cfg.
func NewWindow(cfg config.Config, opts ...Option) *Window {
	o := buildOptions(opts)
	return &Window{cfg: cfg, logger: o.logger, now: o.now}
}

// Run blocks until the window is closed or ctx is done.
func (w *Window) Run(ctx context.Context) error {
	cfg := w.cfg
	scene := newScene(cfg)
	clock := motionmark.NewFrameClock()

	var overlay *Overlay
	if cfg.Overlay {
		var err error
		if overlay, err = NewOverlay(); err != nil {
			return err
		}
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(fmt.Sprintf("MotionMark Paths (complexity %d)", scene.Complexity())).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(false))

	var (
		canvas    *ggcanvas.Canvas
		animToken *gogpu.AnimationToken
		started   bool
		paused    bool
	)

	app.OnDraw(func(dc *gogpu.Context) {
		if !started {
			started = true
			animToken = app.StartAnimation()
			w.logger.Info("motionmark: window started",
				"backend", fmt.Sprint(dc.Backend()),
				"complexity", scene.Complexity(),
				"elements", scene.ElementCount())
		}

		width, height := dc.Width(), dc.Height()
		if width <= 0 || height <= 0 {
			return
		}

		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			var err error
			canvas, err = ggcanvas.New(provider, width, height)
			if err != nil {
				w.logger.Error("motionmark: create canvas", "err", err)
				app.Quit()
				return
			}
		}
		if cw, ch := canvas.Size(); cw != width || ch != height {
			if err := canvas.Resize(width, height); err != nil {
				w.logger.Warn("motionmark: resize canvas", "err", err)
			}
		}
		scene.Resize(width, height)

		if err := canvas.Draw(func(cc *gg.Context) {
			cc.SetRasterizerMode(cfg.RasterizerMode())
			scene.Paint(motionmark.NewContextCanvas(cc))
			if overlay != nil {
				overlay.Draw(cc)
			}
		}); err != nil {
			w.logger.Warn("motionmark: draw", "err", err)
		}
		if err := canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
			w.logger.Warn("motionmark: present", "err", err)
		}

		if stats, ok := clock.Tick(w.now(), scene); ok {
			if overlay != nil {
				overlay.Update(stats)
			}
			logStats(w.logger, stats)
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if d := complexityStep(key); d != 0 {
			if stepComplexity(scene, clock, d, w.logger) && paused {
				app.RequestRedraw()
			}
			return
		}
		if key != gpucontext.KeySpace {
			return
		}
		paused = !paused
		if paused {
			if animToken != nil {
				animToken.Stop()
				animToken = nil
			}
			w.logger.Info("motionmark: paused")
			return
		}
		// Paused time must not count as a frame delta.
		clock.Reset()
		animToken = app.StartAnimation()
		w.logger.Info("motionmark: resumed")
	})

	app.OnClose(func() {
		if animToken != nil {
			animToken.Stop()
		}
		gg.CloseAccelerator()
	})

	stop := context.AfterFunc(ctx, func() {
		app.Quit()
		app.RequestRedraw()
	})
	defer stop()

	return app.Run()
}

// complexityStep maps a key to a complexity change of -1, 0 or +1.
func complexityStep(key gpucontext.Key) int {
	switch key {
	case gpucontext.KeyUp, gpucontext.KeyEqual, gpucontext.KeyNumpadAdd:
		return 1
	case gpucontext.KeyDown, gpucontext.KeyMinus, gpucontext.KeyNumpadSubtract:
		return -1
	default:
		return 0
	}
}

// stepComplexity moves scene delta levels, growing or truncating the chain
// in place. It reports whether the level changed; if so the clock restarts
// so the next stats window measures only the new level.
func stepComplexity(scene *motionmark.Scene, clock *motionmark.FrameClock, delta int, l *slog.Logger) bool {
	before := scene.Complexity()
	scene.SetComplexity(before + delta)
	if scene.Complexity() == before {
		return false
	}
	clock.Reset()
	l.Info("motionmark: complexity changed",
		"complexity", scene.Complexity(),
		"elements", scene.ElementCount())
	return true
}
