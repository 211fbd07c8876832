package motionmark

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gg"
)

// SegmentKind selects the path command an element contributes.
type SegmentKind uint8

const (
	// SegmentLine is a straight segment from Start to End.
	SegmentLine SegmentKind = iota
	// SegmentQuad is a quadratic Bézier through Control1.
	SegmentQuad
	// SegmentCubic is a cubic Bézier through Control1 and Control2.
	SegmentCubic
)

// String returns the segment kind name.
func (k SegmentKind) String() string {
	switch k {
	case SegmentLine:
		return "Line"
	case SegmentQuad:
		return "Quad"
	case SegmentCubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// Element is one segment of the generated chain.
//
// Control1 is meaningful for quads and cubics, Control2 for cubics only.
// Split marks the element as the last one of a stroke group; it never
// breaks geometric continuity with the next element.
type Element struct {
	Kind     SegmentKind
	Start    GridPoint
	Control1 GridPoint
	Control2 GridPoint
	End      GridPoint
	Color    gg.RGBA
	Width    float32
	Split    bool
}

// Palette is the fixed stroke palette. Grey tones appear twice so they are
// drawn more often than the accent.
var Palette = [7]gg.RGBA{
	gg.Hex("#101010"),
	gg.Hex("#808080"),
	gg.Hex("#C0C0C0"),
	gg.Hex("#101010"),
	gg.Hex("#808080"),
	gg.Hex("#C0C0C0"),
	gg.Hex("#E01040"),
}

// Background is the colour every frame is cleared to.
var Background = gg.RGB(12.0/255, 16.0/255, 24.0/255)

// Stroke width range produced by strokeWidth.
const (
	MinStrokeWidth = 1
	MaxStrokeWidth = 21
)

// strokeWidth maps a uniform sample u in [0, 1) to a width in [1, 21).
// The fifth power keeps almost every stroke thin with rare heavy outliers.
func strokeWidth(u float32) float32 {
	return math32.Pow(u, 5)*(MaxStrokeWidth-MinStrokeWidth) + MinStrokeWidth
}
