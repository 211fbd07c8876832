package motionmark

import "math"

// splitToggleThreshold is compared against a uniform draw per element per
// frame; draws above it flip the element's Split flag (about 0.5%).
const splitToggleThreshold = 0.995

// Layout maps grid coordinates to pixels with a single uniform scale,
// centring the whole grid in the viewport.
type Layout struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// NewLayout computes the grid-to-pixel mapping for a width x height viewport.
// The grid is treated as (GridWidth+1) x (GridHeight+1) cells so that the
// inclusive coordinate range fits with half a cell of margin.
func NewLayout(width, height float64) Layout {
	const cols, rows = GridWidth + 1, GridHeight + 1

	scale := math.Max(0, math.Min(width/cols, height/rows))
	if math.IsNaN(scale) {
		scale = 0
	}
	return Layout{
		Scale:   scale,
		OffsetX: (width - scale*cols) * 0.5,
		OffsetY: (height - scale*rows) * 0.5,
	}
}

// Valid reports whether the layout has a positive scale.
func (l Layout) Valid() bool {
	return l.Scale > 0
}

// Map returns the pixel centre of grid cell p.
func (l Layout) Map(p GridPoint) (x, y float64) {
	x = l.OffsetX + (float64(p.X)+0.5)*l.Scale
	y = l.OffsetY + (float64(p.Y)+0.5)*l.Scale
	return x, y
}

// FrameInfo summarizes one Render call.
type FrameInfo struct {
	// Strokes is the number of stroked paths.
	Strokes int
	// Segments is the number of path commands appended after MoveTo.
	Segments int
	// StrokeErrors counts StrokePath calls that returned an error.
	StrokeErrors int
}

// Renderer draws an element chain onto a Canvas.
//
// The chain is emitted as a sequence of paths: a path is opened at the first
// element after a stroke and closed (stroked) after every element whose Split
// flag is set, and after the final element regardless of its flag. Each path
// is stroked with the colour and width of the element that closes it.
type Renderer struct {
	last FrameInfo

	// lastErr is the message of the most recently logged stroke failure.
	lastErr string
}

// NewRenderer returns a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws elements with layout. Nothing is drawn if the layout is
// degenerate or the chain is empty. Render never modifies elements.
func (r *Renderer) Render(c Canvas, elements []Element, layout Layout) FrameInfo {
	var info FrameInfo
	defer func() { r.last = info }()
	if !layout.Valid() || len(elements) == 0 {
		return info
	}

	var firstErr error
	open := false
	last := len(elements) - 1
	for i := range elements {
		e := &elements[i]

		if !open {
			x, y := layout.Map(e.Start)
			c.MoveTo(x, y)
			open = true
		}

		switch e.Kind {
		case SegmentQuad:
			cx, cy := layout.Map(e.Control1)
			x, y := layout.Map(e.End)
			c.QuadraticTo(cx, cy, x, y)
		case SegmentCubic:
			c1x, c1y := layout.Map(e.Control1)
			c2x, c2y := layout.Map(e.Control2)
			x, y := layout.Map(e.End)
			c.CubicTo(c1x, c1y, c2x, c2y, x, y)
		default:
			x, y := layout.Map(e.End)
			c.LineTo(x, y)
		}
		info.Segments++

		if e.Split || i == last {
			if err := c.StrokePath(e.Color, float64(e.Width)); err != nil {
				info.StrokeErrors++
				if firstErr == nil {
					firstErr = err
				}
			}
			info.Strokes++
			open = false
		}
	}

	r.reportStrokeError(firstErr, info)
	return info
}

// reportStrokeError logs a stroke failure once per distinct message. A
// clean frame re-arms the warning.
func (r *Renderer) reportStrokeError(err error, info FrameInfo) {
	if err == nil {
		r.lastErr = ""
		return
	}
	msg := err.Error()
	if msg == r.lastErr {
		return
	}
	r.lastErr = msg
	Logger().Warn("motionmark: stroke failed",
		"failures", info.StrokeErrors, "strokes", info.Strokes, "err", err)
}

// Last returns the summary of the most recent Render call.
func (r *Renderer) Last() FrameInfo {
	return r.last
}

// ToggleSplits flips the Split flag of each element with probability of
// roughly 0.5%, regrouping future frames into different stroke runs without
// touching geometry. It returns the number of flags flipped.
func ToggleSplits(elements []Element, rng Rand) int {
	n := 0
	for i := range elements {
		if rng.Float64() > splitToggleThreshold {
			elements[i].Split = !elements[i].Split
			n++
		}
	}
	return n
}
