package mapgrid

import "fmt"

const (
	// MaxFloor is the highest floor index a map can hold.
	MaxFloor = 15
	// GroundFloor is the surface layer.
	GroundFloor = 7
)

// Position is a tile coordinate. Z is the floor index.
type Position struct {
	X int
	Y int
	Z int
}

// Pos is shorthand for Position{X: x, Y: y, Z: z}.
func Pos(x, y, z int) Position {
	return Position{X: x, Y: y, Z: z}
}

// Offset returns p moved by dx, dy on the same floor.
func (p Position) Offset(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy, Z: p.Z}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}
