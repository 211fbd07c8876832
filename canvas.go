package motionmark

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
)

// Canvas is the drawing surface a frame is painted on.
//
// Path commands accumulate into a single open path; StrokePath strokes it
// with round caps and joins and starts a new empty path.
type Canvas interface {
	Clear(c gg.RGBA)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	StrokePath(c gg.RGBA, width float64) error
}

// ContextCanvas paints onto a gg.Context.
type ContextCanvas struct {
	dc *gg.Context
}

var _ Canvas = (*ContextCanvas)(nil)

// NewContextCanvas wraps dc and configures it for round-capped strokes.
func NewContextCanvas(dc *gg.Context) *ContextCanvas {
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	return &ContextCanvas{dc: dc}
}

// Context returns the wrapped context.
func (c *ContextCanvas) Context() *gg.Context { return c.dc }

func (c *ContextCanvas) Clear(col gg.RGBA) {
	c.dc.ClearPath()
	c.dc.ClearWithColor(col)
}

func (c *ContextCanvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }
func (c *ContextCanvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }

func (c *ContextCanvas) QuadraticTo(cx, cy, x, y float64) {
	c.dc.QuadraticTo(cx, cy, x, y)
}

func (c *ContextCanvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (c *ContextCanvas) StrokePath(col gg.RGBA, width float64) error {
	c.dc.SetStrokeBrush(gg.Solid(col))
	c.dc.SetLineWidth(width)
	return c.dc.Stroke()
}

// RecorderCanvas records a frame as gg recording commands, for playback
// into any registered recording backend.
type RecorderCanvas struct {
	rec *recording.Recorder
}

var _ Canvas = (*RecorderCanvas)(nil)

// NewRecorderCanvas wraps rec and configures it for round-capped strokes.
func NewRecorderCanvas(rec *recording.Recorder) *RecorderCanvas {
	rec.SetLineCap(recording.LineCapRound)
	rec.SetLineJoin(recording.LineJoinRound)
	return &RecorderCanvas{rec: rec}
}

// Recorder returns the wrapped recorder.
func (c *RecorderCanvas) Recorder() *recording.Recorder { return c.rec }

func (c *RecorderCanvas) Clear(col gg.RGBA) {
	c.rec.ClearPath()
	c.rec.ClearWithColor(col)
}

func (c *RecorderCanvas) MoveTo(x, y float64) { c.rec.MoveTo(x, y) }
func (c *RecorderCanvas) LineTo(x, y float64) { c.rec.LineTo(x, y) }

func (c *RecorderCanvas) QuadraticTo(cx, cy, x, y float64) {
	c.rec.QuadraticTo(cx, cy, x, y)
}

func (c *RecorderCanvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.rec.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (c *RecorderCanvas) StrokePath(col gg.RGBA, width float64) error {
	c.rec.SetStrokeStyle(recording.NewSolidBrush(col))
	c.rec.SetLineWidth(width)
	c.rec.Stroke()
	return nil
}
