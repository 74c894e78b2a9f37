package border

import (
	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/mapgrid"
)

type direction struct {
	dx, dy int
	bit    uint8
}

// North is y-1.
var (
	around8 = [8]direction{
		{0, -1, autoborder.N},
		{1, -1, autoborder.NE},
		{1, 0, autoborder.E},
		{1, 1, autoborder.SE},
		{0, 1, autoborder.S},
		{-1, 1, autoborder.SW},
		{-1, 0, autoborder.W},
		{-1, -1, autoborder.NW},
	}
	around4 = [4]direction{
		{0, -1, autoborder.Side4N},
		{1, 0, autoborder.Side4E},
		{0, 1, autoborder.Side4S},
		{-1, 0, autoborder.Side4W},
	}
)

// mask sets the bit of every direction whose neighbour satisfies occupied.
// Neighbours off the map or without a tile are never occupied.
func mask(m *mapgrid.Map, p mapgrid.Position, dirs []direction, occupied func(*mapgrid.Tile) bool) uint8 {
	var out uint8
	for _, d := range dirs {
		n := m.Tile(p.Offset(d.dx, d.dy))
		if n != nil && occupied(n) {
			out |= d.bit
		}
	}
	return out
}
