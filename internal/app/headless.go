package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	"github.com/gogpu/motionmark"
	"github.com/gogpu/motionmark/backends/svg"
	"github.com/gogpu/motionmark/internal/config"
)

// ErrNoSVGBackend is returned when the "svg" recording backend is missing.
var ErrNoSVGBackend = errors.New("app: svg backend does not support files")

// Report summarizes a headless run.
type Report struct {
	Complexity  int
	Elements    int
	Width       int
	Height      int
	Rasterizer  gg.RasterizerMode
	Frames      int
	Strokes     int
	Segments    int
	Elapsed     time.Duration
	Windows     []motionmark.FrameStats
	Interrupted bool
}

// MeanFPS is the frame rate over the whole run.
func (r Report) MeanFPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

// Headless paints frames into an offscreen gg.Context as fast as it can.
type Headless struct {
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewHeadless creates a headless host for cfg. cfg should already be
// validated.
func NewHeadless(cfg config.Config, opts ...Option) *Headless {
	o := buildOptions(opts)
	return &Headless{cfg: cfg, logger: o.logger, now: o.now}
}

// Run paints until the frame budget or duration is spent, or ctx is done.
// Cancellation ends the run early without an error; the report is marked
// Interrupted. Requested PNG and SVG files are written after the last frame.
func (h *Headless) Run(ctx context.Context) (Report, error) {
	cfg := h.cfg
	scene := newScene(cfg)

	dc := gg.NewContext(cfg.Width, cfg.Height)
	defer func() { _ = dc.Close() }()
	dc.SetRasterizerMode(cfg.RasterizerMode())
	canvas := motionmark.NewContextCanvas(dc)

	var overlay *Overlay
	if cfg.Overlay {
		var err error
		if overlay, err = NewOverlay(); err != nil {
			return Report{}, err
		}
	}

	report := Report{
		Complexity: scene.Complexity(),
		Elements:   scene.ElementCount(),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Rasterizer: cfg.RasterizerMode(),
	}

	h.logger.Info("motionmark: headless run",
		"complexity", report.Complexity,
		"elements", report.Elements,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"rasterizer", report.Rasterizer.String(),
		"frames", cfg.FrameBudget(),
		"duration", cfg.RunDuration())

	clock := motionmark.NewFrameClock()
	start := h.now()
	clock.Tick(start, scene)

	var deadline time.Time
	if d := cfg.RunDuration(); d > 0 {
		deadline = start.Add(d)
	}

	budget := cfg.FrameBudget()
	now := start
	for {
		if budget > 0 && report.Frames >= budget {
			break
		}
		if !deadline.IsZero() && !now.Before(deadline) {
			break
		}
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}

		info := scene.Paint(canvas)
		if overlay != nil {
			overlay.Draw(dc)
		}
		report.Frames++
		report.Strokes += info.Strokes
		report.Segments += info.Segments

		now = h.now()
		if stats, ok := clock.Tick(now, scene); ok {
			report.Windows = append(report.Windows, stats)
			if overlay != nil {
				overlay.Update(stats)
			}
			logStats(h.logger, stats)
		}
	}
	report.Elapsed = now.Sub(start)

	if cfg.PNG != "" && report.Frames > 0 {
		if err := dc.SavePNG(cfg.PNG); err != nil {
			return report, fmt.Errorf("app: save png: %w", err)
		}
		h.logger.Info("motionmark: wrote png", "path", cfg.PNG)
	}
	if cfg.SVG != "" {
		if err := ExportSVG(scene, cfg.SVG); err != nil {
			return report, err
		}
		h.logger.Info("motionmark: wrote svg", "path", cfg.SVG)
	}
	return report, nil
}

// ExportSVG records one frame of scene and plays it back into the "svg"
// recording backend. The scene is not modified.
func ExportSVG(scene *motionmark.Scene, path string) error {
	w, h := scene.Size()
	rec := recording.NewRecorder(w, h)
	scene.Draw(motionmark.NewRecorderCanvas(rec))

	backend, err := recording.NewBackend("svg")
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if b, ok := backend.(*svg.Backend); ok {
		b.SetTitle(fmt.Sprintf("motionmark complexity %d", scene.Complexity()))
	}
	if err := rec.FinishRecording().Playback(backend); err != nil {
		return fmt.Errorf("app: svg playback: %w", err)
	}
	fb, ok := backend.(recording.FileBackend)
	if !ok {
		return ErrNoSVGBackend
	}
	if err := fb.SaveToFile(path); err != nil {
		return fmt.Errorf("app: save svg: %w", err)
	}
	return nil
}
