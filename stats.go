package motionmark

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Frame pacing bounds. Deltas are clamped so a stalled frame or a timer
// hiccup cannot dominate the average.
const (
	MinFrameDelta = time.Second / 240
	MaxFrameDelta = 250 * time.Millisecond

	// StatsWindow is how much frame time is accumulated per report.
	StatsWindow = 500 * time.Millisecond
)

// FrameStats is one averaged report over a StatsWindow.
type FrameStats struct {
	Complexity int
	Elements   int
	FrameTime  time.Duration
	FPS        float64
}

var statsPrinter = message.NewPrinter(language.English)

// String formats the stats for a title bar or overlay.
func (s FrameStats) String() string {
	return statsPrinter.Sprintf("%.1f FPS  |  %.2f ms  |  Complexity %d  |  Elements %d",
		s.FPS, float64(s.FrameTime)/float64(time.Millisecond), s.Complexity, s.Elements)
}

// FrameClock accumulates frame deltas and emits averaged FrameStats once
// per StatsWindow.
type FrameClock struct {
	last        time.Time
	accumulated time.Duration
	frames      int
	started     bool
}

// NewFrameClock returns a clock that starts timing at its first Tick.
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// Tick records a frame finishing at now. When a full window has
// accumulated it returns the averaged stats for scene s and true.
// The first Tick only primes the clock.
func (c *FrameClock) Tick(now time.Time, s *Scene) (FrameStats, bool) {
	if !c.started {
		c.started = true
		c.last = now
		return FrameStats{}, false
	}

	dt := min(max(now.Sub(c.last), MinFrameDelta), MaxFrameDelta)
	c.last = now
	c.accumulated += dt
	c.frames++

	if c.accumulated < StatsWindow {
		return FrameStats{}, false
	}

	stats := FrameStats{
		FrameTime: c.accumulated / time.Duration(c.frames),
		FPS:       float64(c.frames) / c.accumulated.Seconds(),
	}
	if s != nil {
		stats.Complexity = s.Complexity()
		stats.Elements = s.ElementCount()
	}
	c.accumulated = 0
	c.frames = 0
	return stats, true
}

// Reset forgets all timing state, e.g. after the host pauses rendering.
func (c *FrameClock) Reset() {
	*c = FrameClock{}
}
