package motionmark

import (
	"fmt"
	"image/color"
	"slices"
	"testing"

	"github.com/gogpu/gg"
)

func TestNewScene_Defaults(t *testing.T) {
	s := NewScene(WithSeed(1))
	if s.Complexity() != DefaultComplexity {
		t.Errorf("complexity = %d, want %d", s.Complexity(), DefaultComplexity)
	}
	if s.ElementCount() != 9000 {
		t.Errorf("element count = %d, want 9000", s.ElementCount())
	}
	if w, h := s.Size(); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", w, h, DefaultWidth, DefaultHeight)
	}
}

func TestNewScene_Options(t *testing.T) {
	s := NewScene(WithSeed(1), WithComplexity(-4), WithViewport(0, -3))
	if s.Complexity() != 0 || s.ElementCount() != 1000 {
		t.Errorf("complexity/count = %d/%d, want 0/1000", s.Complexity(), s.ElementCount())
	}
	if w, h := s.Size(); w != 1 || h != 1 {
		t.Errorf("size = %dx%d, want clamped 1x1", w, h)
	}
}

func TestScene_Resize(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{800, 600, 800, 600},
		{0, 600, 1, 600},
		{800, -1, 800, 1},
		{-5, -5, 1, 1},
	}

	s := NewScene(WithSeed(1), WithComplexity(0))
	for _, tt := range tests {
		s.Resize(tt.w, tt.h)
		if w, h := s.Size(); w != tt.wantW || h != tt.wantH {
			t.Errorf("Resize(%d, %d) -> %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestScene_SetComplexity(t *testing.T) {
	s := NewScene(WithSeed(2), WithComplexity(1))
	prefix := slices.Clone(s.Elements())

	s.SetComplexity(11)
	if s.ElementCount() != 30000 {
		t.Fatalf("element count = %d, want 30000", s.ElementCount())
	}
	s.SetComplexity(1)
	if !slices.Equal(prefix, s.Elements()) {
		t.Error("grow then shrink did not preserve the chain")
	}
}

func TestScene_DrawClearsFirst(t *testing.T) {
	s := NewScene(WithSeed(3), WithComplexity(0))
	c := &opCanvas{}
	s.Draw(c)
	if len(c.ops) == 0 || c.ops[0] != "clear" {
		t.Fatalf("first op = %v, want clear", c.ops)
	}
}

func TestScene_PaintIsDeterministic(t *testing.T) {
	a := NewScene(WithSeed(4), WithComplexity(2))
	b := NewScene(WithSeed(4), WithComplexity(2))

	for range 10 {
		ia := a.Paint(&nullCanvas{})
		ib := b.Paint(&nullCanvas{})
		if ia != ib {
			t.Fatalf("frame info differs: %+v vs %+v", ia, ib)
		}
	}
	if !slices.Equal(a.Elements(), b.Elements()) {
		t.Error("same seed diverged after painting")
	}
}

func TestScene_PaintTogglesAfterDrawing(t *testing.T) {
	s := NewScene(WithRand(constRand{f: 0.999}), WithComplexity(0))
	before := slices.Clone(s.Elements())

	c := &opCanvas{}
	info := s.Paint(c)

	want := 0
	for i, e := range before {
		if e.Split || i == len(before)-1 {
			want++
		}
	}
	if info.Strokes != want {
		t.Errorf("strokes = %d, want %d computed from pre-toggle flags", info.Strokes, want)
	}
	for i := range before {
		if s.Elements()[i].Split == before[i].Split {
			t.Fatalf("element %d not toggled after paint", i)
		}
	}
}

func TestScene_PaintContext(t *testing.T) {
	const w, h = 162, 82
	dc := gg.NewContext(w, h)
	s := NewScene(WithSeed(5), WithComplexity(0), WithViewport(w, h))

	info := s.Paint(NewContextCanvas(dc))
	if info.Strokes == 0 {
		t.Fatal("nothing stroked")
	}

	// A cleared frame has a single colour; strokes add more.
	img := dc.Image()
	seen := make(map[color.NRGBA]struct{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			seen[color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)] = struct{}{}
		}
	}
	if len(seen) < 2 {
		t.Errorf("canvas has %d distinct colours, want strokes over the background", len(seen))
	}
}

func BenchmarkScene_PaintContext(b *testing.B) {
	for _, level := range []int{0, 4, 8} {
		b.Run(fmt.Sprintf("%d_elements", ElementCount(level)), func(b *testing.B) {
			dc := gg.NewContext(640, 360)
			c := NewContextCanvas(dc)
			s := NewScene(WithSeed(1), WithComplexity(level), WithViewport(640, 360))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s.Paint(c)
			}
		})
	}
}
