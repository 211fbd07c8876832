package motionmark

import (
	"slices"
	"testing"
)

func TestElementCount(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{-5, 1000},
		{0, 1000},
		{1, 2000},
		{8, 9000},
		{9, 10000},
		{10, 20000},
		{15, 70000},
		{19, 110000},
		{20, 120000},
		{24, 120000},
		{99, 120000},
	}

	for _, tt := range tests {
		if got := ElementCount(tt.level); got != tt.want {
			t.Errorf("ElementCount(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestGenerator_SetComplexityResizes(t *testing.T) {
	g := NewGenerator(NewRand(1))
	if g.Len() != 0 || g.Complexity() != -1 {
		t.Fatalf("new generator: len=%d complexity=%d, want empty and -1", g.Len(), g.Complexity())
	}

	for level := MinComplexity; level <= MaxComplexity; level++ {
		g.SetComplexity(level)
		if g.Len() != ElementCount(level) {
			t.Errorf("level %d: len = %d, want %d", level, g.Len(), ElementCount(level))
		}
	}
	for level := MaxComplexity; level >= MinComplexity; level-- {
		g.SetComplexity(level)
		if g.Len() != ElementCount(level) {
			t.Errorf("shrinking to level %d: len = %d, want %d", level, g.Len(), ElementCount(level))
		}
	}
}

func TestGenerator_SetComplexityClamps(t *testing.T) {
	g := NewGenerator(NewRand(2))

	g.SetComplexity(-7)
	if g.Complexity() != 0 || g.Len() != 1000 {
		t.Errorf("SetComplexity(-7): complexity=%d len=%d, want 0 and 1000", g.Complexity(), g.Len())
	}

	g.SetComplexity(31)
	if g.Complexity() != MaxComplexity || g.Len() != maxElements {
		t.Errorf("SetComplexity(31): complexity=%d len=%d, want %d and %d",
			g.Complexity(), g.Len(), MaxComplexity, maxElements)
	}
}

func TestGenerator_SameCountIsNoop(t *testing.T) {
	g := NewGenerator(NewRand(3))
	g.SetComplexity(20)
	before := slices.Clone(g.Elements())

	// Levels 20..24 all saturate at the same count.
	g.SetComplexity(24)
	if !slices.Equal(before, g.Elements()) {
		t.Error("changing to a level with the same element count regenerated the chain")
	}
}

func TestGenerator_GrowShrinkPreservesPrefix(t *testing.T) {
	g := NewGenerator(NewRand(4))
	g.SetComplexity(2)
	small := slices.Clone(g.Elements())

	g.SetComplexity(12)
	if !slices.Equal(small, g.Elements()[:len(small)]) {
		t.Fatal("growing changed existing elements")
	}

	g.SetComplexity(2)
	if !slices.Equal(small, g.Elements()) {
		t.Fatal("shrinking back did not restore the original prefix")
	}
	if g.Cursor() != small[len(small)-1].End {
		t.Errorf("cursor = %v, want last end %v", g.Cursor(), small[len(small)-1].End)
	}

	// Regrowing continues from the cursor but produces fresh geometry.
	g.SetComplexity(5)
	if !slices.Equal(small, g.Elements()[:len(small)]) {
		t.Fatal("regrowing changed existing elements")
	}
	if g.Elements()[len(small)].Start != small[len(small)-1].End {
		t.Error("regrown tail does not start at the cursor")
	}
}

func TestGenerator_ResizeToZeroResetsCursor(t *testing.T) {
	g := NewGenerator(NewRand(5))
	g.SetComplexity(0)
	g.resize(0)
	if g.Len() != 0 {
		t.Fatalf("len = %d, want 0", g.Len())
	}
	if g.Cursor() != GridCenter {
		t.Errorf("cursor = %v, want grid centre %v", g.Cursor(), GridCenter)
	}

	g.resize(10)
	if g.Elements()[0].Start != GridCenter {
		t.Errorf("first element starts at %v, want %v", g.Elements()[0].Start, GridCenter)
	}
}

func TestGenerator_ChainContinuity(t *testing.T) {
	for seed := uint64(0); seed < 8; seed++ {
		g := NewGenerator(NewRand(seed))
		g.SetComplexity(14)
		elems := g.Elements()
		if elems[0].Start != GridCenter {
			t.Errorf("seed %d: chain starts at %v, want %v", seed, elems[0].Start, GridCenter)
		}
		for i := 1; i < len(elems); i++ {
			if elems[i].Start != elems[i-1].End {
				t.Fatalf("seed %d: element %d starts at %v, previous ends at %v",
					seed, i, elems[i].Start, elems[i-1].End)
			}
		}
	}
}

func TestGenerator_PointsInBounds(t *testing.T) {
	for seed := uint64(0); seed < 32; seed++ {
		g := NewGenerator(NewRand(seed))
		g.SetComplexity(MaxComplexity)
		for i, e := range g.Elements() {
			pts := []GridPoint{e.Start, e.End}
			if e.Kind != SegmentLine {
				pts = append(pts, e.Control1)
			}
			if e.Kind == SegmentCubic {
				pts = append(pts, e.Control2)
			}
			for _, p := range pts {
				if !p.InBounds() {
					t.Fatalf("seed %d: element %d has out-of-grid point %v", seed, i, p)
				}
			}
		}
	}
}

func TestGenerator_ControlPointsChain(t *testing.T) {
	g := NewGenerator(NewRand(6))
	g.SetComplexity(0)
	for i, e := range g.Elements() {
		switch e.Kind {
		case SegmentLine:
			if e.Control1 != (GridPoint{}) || e.Control2 != (GridPoint{}) {
				t.Errorf("line %d carries control points %v %v", i, e.Control1, e.Control2)
			}
		case SegmentQuad:
			if !adjacent(e.Start, e.Control1) || !adjacent(e.Control1, e.End) {
				t.Errorf("quad %d is not a chain of walk steps: %+v", i, e)
			}
		case SegmentCubic:
			// Both the second control point and the end step from the first.
			if !adjacent(e.Start, e.Control1) || !adjacent(e.Control1, e.Control2) || !adjacent(e.Control1, e.End) {
				t.Errorf("cubic %d is not built from walk steps: %+v", i, e)
			}
		}
	}
}

// adjacent reports whether b is reachable from a in one walk step,
// including reflected steps.
func adjacent(a, b GridPoint) bool {
	for _, off := range stepOffsets {
		if step(a, off) == b {
			return true
		}
	}
	return false
}

func TestGenerator_KindDistribution(t *testing.T) {
	g := NewGenerator(NewRand(7))
	g.SetComplexity(10)

	var counts [3]int
	accent := 0
	for _, e := range g.Elements() {
		counts[e.Kind]++
		if e.Color == Palette[6] {
			accent++
		}
	}
	n := float64(g.Len())

	if f := float64(counts[SegmentLine]) / n; f < 0.45 || f > 0.55 {
		t.Errorf("line fraction = %.3f, want about 0.5", f)
	}
	for _, k := range []SegmentKind{SegmentQuad, SegmentCubic} {
		if f := float64(counts[k]) / n; f < 0.2 || f > 0.3 {
			t.Errorf("%v fraction = %.3f, want about 0.25", k, f)
		}
	}
	if f := float64(accent) / n; f < 0.11 || f > 0.18 {
		t.Errorf("accent colour fraction = %.3f, want about 1/7", f)
	}
}

func TestGenerator_StrokeWidthDistribution(t *testing.T) {
	g := NewGenerator(NewRand(8))
	g.SetComplexity(MaxComplexity)

	widths := make([]float32, 0, g.Len())
	splits := 0
	for _, e := range g.Elements() {
		if e.Width < MinStrokeWidth || e.Width > MaxStrokeWidth {
			t.Fatalf("width %v outside [%d, %d]", e.Width, MinStrokeWidth, MaxStrokeWidth)
		}
		widths = append(widths, e.Width)
		if e.Split {
			splits++
		}
	}

	slices.Sort(widths)
	median := widths[len(widths)/2]
	if median > 3 {
		t.Errorf("median width = %v, want well below the midpoint 11", median)
	}
	if widths[len(widths)-1] < 15 {
		t.Errorf("max width = %v, expected some thick outliers", widths[len(widths)-1])
	}
	if f := float64(splits) / float64(len(widths)); f < 0.47 || f > 0.53 {
		t.Errorf("split fraction = %.3f, want about 0.5", f)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(NewRand(42))
	b := NewGenerator(NewRand(42))
	a.SetComplexity(3)
	b.SetComplexity(3)
	if !slices.Equal(a.Elements(), b.Elements()) {
		t.Error("same seed produced different chains")
	}
}

func BenchmarkGenerator_Grow(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g := NewGenerator(NewRand(uint64(i)))
		g.SetComplexity(MaxComplexity)
	}
}
