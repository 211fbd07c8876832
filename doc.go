// Package motionmark implements the MotionMark "paths" stress scene on top
// of the gg 2D graphics library.
//
// # Overview
//
// A Generator lays out a long chain of connected line, quadratic and cubic
// segments on an 80x40 logical grid using a bounded random walk. A Renderer
// maps the grid onto any viewport with a uniform, centred scale and strokes
// the chain as a series of paths, breaking to a new path after every element
// whose Split flag is set. Between frames a small random fraction of Split
// flags is flipped, so the stroke grouping keeps changing while the geometry
// stays fixed.
//
// The chain length is controlled by a complexity level in [0, 24]:
//
//	level  0..9   (level+1) * 1000 elements
//	level 10..24  min((level-8) * 10000, 120000) elements
//
// # Quick Start
//
//	scene := motionmark.NewScene(motionmark.WithComplexity(12), motionmark.WithSeed(1))
//	dc := gg.NewContext(1280, 720)
//	canvas := motionmark.NewContextCanvas(dc)
//
//	clock := motionmark.NewFrameClock()
//	for {
//	    scene.Paint(canvas)
//	    if stats, ok := clock.Tick(time.Now(), scene); ok {
//	        fmt.Println(stats)
//	    }
//	}
//
// # Canvases
//
// Any type implementing Canvas can be painted. ContextCanvas draws into a
// gg.Context (software or GPU accelerated); RecorderCanvas captures a frame
// as gg recording commands for vector export.
//
// # Randomness
//
// All randomness comes from the Rand passed with WithRand or WithSeed, so a
// fixed seed reproduces the same chain and the same split toggles.
package motionmark
