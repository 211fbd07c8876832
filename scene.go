package motionmark

import "time"

// Default viewport used until the host reports a size.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// SceneOption configures a Scene.
type SceneOption func(*sceneOptions)

type sceneOptions struct {
	rng        Rand
	complexity int
	width      int
	height     int
}

func defaultSceneOptions() sceneOptions {
	return sceneOptions{
		complexity: DefaultComplexity,
		width:      DefaultWidth,
		height:     DefaultHeight,
	}
}

// WithRand sets the random source shared by generation and split toggling.
// The default is seeded from the wall clock.
func WithRand(rng Rand) SceneOption {
	return func(o *sceneOptions) {
		o.rng = rng
	}
}

// WithSeed is shorthand for WithRand(NewRand(seed)).
func WithSeed(seed uint64) SceneOption {
	return WithRand(NewRand(seed))
}

// WithComplexity sets the initial complexity level. Out-of-range values are
// clamped.
func WithComplexity(level int) SceneOption {
	return func(o *sceneOptions) {
		o.complexity = level
	}
}

// WithViewport sets the initial viewport size in pixels.
func WithViewport(width, height int) SceneOption {
	return func(o *sceneOptions) {
		o.width = width
		o.height = height
	}
}

// Scene ties a Generator and a Renderer to a viewport. It is the object a
// host event loop drives: Resize on window changes, Paint once per frame.
//
// Scene is not safe for concurrent use.
type Scene struct {
	gen      *Generator
	renderer *Renderer
	rng      Rand
	width    int
	height   int
}

// NewScene creates a scene and generates the chain for its initial
// complexity.
func NewScene(opts ...SceneOption) *Scene {
	o := defaultSceneOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRand(uint64(time.Now().UnixNano())) //nolint:gosec // seed only
	}

	s := &Scene{
		gen:      NewGenerator(o.rng),
		renderer: NewRenderer(),
		rng:      o.rng,
	}
	s.Resize(o.width, o.height)
	s.gen.SetComplexity(o.complexity)
	return s
}

// Resize sets the viewport size. Both dimensions are clamped to at least 1.
func (s *Scene) Resize(width, height int) {
	s.width = max(1, width)
	s.height = max(1, height)
}

// Size returns the viewport size.
func (s *Scene) Size() (width, height int) {
	return s.width, s.height
}

// SetComplexity clamps level and regrows or truncates the chain.
func (s *Scene) SetComplexity(level int) {
	s.gen.SetComplexity(level)
}

// Complexity returns the current complexity level.
func (s *Scene) Complexity() int {
	return s.gen.Complexity()
}

// ElementCount returns the live chain length.
func (s *Scene) ElementCount() int {
	return s.gen.Len()
}

// Elements returns the chain. See Generator.Elements.
func (s *Scene) Elements() []Element {
	return s.gen.Elements()
}

// Layout returns the grid-to-pixel mapping for the current viewport.
func (s *Scene) Layout() Layout {
	return NewLayout(float64(s.width), float64(s.height))
}

// Draw clears c and renders the chain without mutating it.
func (s *Scene) Draw(c Canvas) FrameInfo {
	c.Clear(Background)
	return s.renderer.Render(c, s.gen.Elements(), s.Layout())
}

// Paint draws one frame and then randomly flips a few Split flags so the
// next frame groups strokes differently.
func (s *Scene) Paint(c Canvas) FrameInfo {
	info := s.Draw(c)
	toggled := ToggleSplits(s.gen.Elements(), s.rng)
	Logger().Debug("motionmark: frame painted",
		"strokes", info.Strokes, "segments", info.Segments, "toggled", toggled)
	return info
}
