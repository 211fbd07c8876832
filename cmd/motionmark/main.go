// Command motionmark runs the MotionMark "paths" benchmark on gg.
//
// By default it opens a window and repaints continuously; -headless renders
// offscreen and prints a report:
//
//	motionmark -complexity 16
//	motionmark -headless -frames 600 -rasterizer SparseStrips -png last.png
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/motionmark"
	"github.com/gogpu/motionmark/internal/app"
	"github.com/gogpu/motionmark/internal/config"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("motionmark: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	motionmark.SetLogger(logger)
	gg.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx, cfg, os.Stdout, app.WithLogger(logger)); err != nil {
		stop()
		log.Fatalf("motionmark: %v", err)
	}
}
