package motionmark

import (
	"math/rand/v2"
	"slices"
)

// Complexity bounds and default.
const (
	MinComplexity     = 0
	MaxComplexity     = 24
	DefaultComplexity = 8
)

// maxElements caps the buffer for the upper complexity levels.
const maxElements = 120_000

// Rand is the random source used by the generator and renderer.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float32() float32
	Float64() float64
}

// NewRand returns a deterministic PCG-backed source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ClampComplexity limits level to [MinComplexity, MaxComplexity].
func ClampComplexity(level int) int {
	return min(max(level, MinComplexity), MaxComplexity)
}

// ElementCount returns the buffer length for a complexity level.
// Levels below 10 grow by 1000 elements per step, higher levels by 10000,
// saturating at 120000.
func ElementCount(level int) int {
	level = ClampComplexity(level)
	if level < 10 {
		return (level + 1) * 1000
	}
	return min((level-8)*10_000, maxElements)
}

// Generator owns the element chain and grows or truncates it in place.
//
// Elements that already exist are never regenerated: growing appends to the
// tail and shrinking truncates it, so a grow followed by a shrink back to the
// same level leaves the prefix untouched.
//
// Generator is not safe for concurrent use.
type Generator struct {
	rng        Rand
	elements   []Element
	cursor     GridPoint
	complexity int
}

// NewGenerator creates an empty generator drawing from rng.
// Call SetComplexity to populate it.
func NewGenerator(rng Rand) *Generator {
	return &Generator{
		rng:        rng,
		cursor:     GridCenter,
		complexity: -1,
	}
}

// SetComplexity clamps level and resizes the chain to ElementCount(level).
func (g *Generator) SetComplexity(level int) {
	level = ClampComplexity(level)
	g.complexity = level
	g.resize(ElementCount(level))
}

// Complexity returns the current level, or -1 before SetComplexity is called.
func (g *Generator) Complexity() int {
	return g.complexity
}

// Len returns the number of elements in the chain.
func (g *Generator) Len() int {
	return len(g.elements)
}

// Elements returns the chain. The slice aliases the generator's buffer:
// callers may flip Split flags but must not append or reorder.
func (g *Generator) Elements() []Element {
	return g.elements
}

// Cursor returns the point the next generated element will start from.
func (g *Generator) Cursor() GridPoint {
	return g.cursor
}

func (g *Generator) resize(count int) {
	current := len(g.elements)
	if count == current {
		return
	}

	if count < current {
		clear(g.elements[count:])
		g.elements = g.elements[:count]
		if count > 0 {
			g.cursor = g.elements[count-1].End
		} else {
			g.cursor = GridCenter
		}
		Logger().Debug("motionmark: chain truncated", "from", current, "to", count)
		return
	}

	if current == 0 {
		g.cursor = GridCenter
	} else {
		g.cursor = g.elements[current-1].End
	}
	g.elements = slices.Grow(g.elements, count-current)
	for range count - current {
		e := g.createRandomElement(g.cursor)
		g.elements = append(g.elements, e)
		g.cursor = e.End
	}
	Logger().Debug("motionmark: chain grown", "from", current, "to", count)
}

// createRandomElement synthesizes one element starting at last.
// Lines are twice as likely as either curve kind.
func (g *Generator) createRandomElement(last GridPoint) Element {
	segType := g.rng.IntN(4)
	next := randomPoint(g.rng, last)

	e := Element{Start: last}
	switch {
	case segType < 2:
		e.Kind = SegmentLine
		e.End = next
	case segType == 2:
		e.Kind = SegmentQuad
		e.Control1 = next
		e.End = randomPoint(g.rng, next)
	default:
		e.Kind = SegmentCubic
		e.Control1 = next
		e.Control2 = randomPoint(g.rng, next)
		e.End = randomPoint(g.rng, next)
	}

	e.Color = Palette[g.rng.IntN(len(Palette))]
	e.Width = strokeWidth(g.rng.Float32())
	e.Split = g.rng.IntN(2) == 0
	return e
}
