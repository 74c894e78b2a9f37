package paint

import (
	"math"

	"github.com/milk9111/tilebrush/mapgrid"
)

// Shape is the footprint of a sized brush.
type Shape uint8

const (
	Square Shape = iota
	Circle
)

func (s Shape) String() string {
	if s == Circle {
		return "circle"
	}
	return "square"
}

// ParseShape accepts "square" and "circle".
func ParseShape(name string) (Shape, bool) {
	switch name {
	case "square":
		return Square, true
	case "circle":
		return Circle, true
	}
	return Square, false
}

// AffectedTiles returns the tiles a brush of the given size and shape paints
// around center, and the tiles whose borders must be recomputed afterwards.
// Both lists scan the box [-size-1, size+1] row by row, so a position can be
// in both.
func AffectedTiles(center mapgrid.Position, size int, shape Shape) (draw, halo []mapgrid.Position) {
	if size < 0 {
		size = 0
	}
	for dy := -size - 1; dy <= size+1; dy++ {
		for dx := -size - 1; dx <= size+1; dx++ {
			p := center.Offset(dx, dy)
			switch shape {
			case Circle:
				dist := math.Sqrt(float64(dx*dx + dy*dy))
				if dist < float64(size)+0.005 {
					draw = append(draw, p)
				}
				if math.Abs(dist-float64(size)) < 1.5 {
					halo = append(halo, p)
				}
			default:
				adx, ady := abs(dx), abs(dy)
				if adx <= size && ady <= size {
					draw = append(draw, p)
				}
				if adx-size < 2 && ady-size < 2 {
					halo = append(halo, p)
				}
			}
		}
	}
	return draw, halo
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
