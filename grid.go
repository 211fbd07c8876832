package motionmark

// Grid dimensions in logical cells. Coordinates are inclusive on both ends,
// so a point may sit anywhere in [0, GridWidth] x [0, GridHeight].
const (
	GridWidth  = 80
	GridHeight = 40
)

// GridPoint is an integer position on the logical grid.
type GridPoint struct {
	X, Y int
}

// GridCenter is where a fresh chain starts.
var GridCenter = GridPoint{X: GridWidth / 2, Y: GridHeight / 2}

// InBounds reports whether p lies on the grid.
func (p GridPoint) InBounds() bool {
	return p.X >= 0 && p.X <= GridWidth && p.Y >= 0 && p.Y <= GridHeight
}

// stepOffsets are the four moves of the random walk. The walk drifts right
// unless the single large left step is drawn.
var stepOffsets = [4]GridPoint{
	{X: -4, Y: 0},
	{X: 2, Y: 0},
	{X: 1, Y: -2},
	{X: 1, Y: 2},
}

// step moves p by off, reflecting each axis independently when the move
// would leave the grid.
func step(p, off GridPoint) GridPoint {
	x := p.X + off.X
	if x < 0 || x > GridWidth {
		x -= off.X * 2
	}
	y := p.Y + off.Y
	if y < 0 || y > GridHeight {
		y -= off.Y * 2
	}
	return GridPoint{X: x, Y: y}
}

// randomPoint takes one random-walk step from last.
func randomPoint(rng Rand, last GridPoint) GridPoint {
	return step(last, stepOffsets[rng.IntN(len(stepOffsets))])
}
