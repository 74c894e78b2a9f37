package paint

import (
	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/mapgrid"
)

// FloodFill finds bucket-fill regions inside a square window centred on the
// seed. The visited bitmap is reused between fills.
type FloodFill struct {
	window  int
	visited []bool
}

// NewFloodFill returns a filler over a window x window area.
func NewFloodFill(window int) *FloodFill {
	if window < 1 {
		window = 1
	}
	return &FloodFill{window: window, visited: make([]bool, window*window)}
}

func (f *FloodFill) Window() int { return f.window }

// Budget is the number of visited window cells after which a fill stops
// early. Cells that do not match count too.
func (f *FloodFill) Budget() int { return 4 * f.window }

// Region returns, in visit order, the tiles 4-connected to seed whose ground
// brush is the seed's ground brush, or that lack ground like the seed does.
// It returns nil when the seed already carries paint or its ground belongs
// to no brush. A fill that exceeds the budget returns what it found so far.
func (f *FloodFill) Region(m *mapgrid.Map, reg *brush.Registry, seed mapgrid.Position, paint *brush.Brush) []mapgrid.Position {
	if !m.InBounds(seed) {
		return nil
	}
	st := m.Tile(seed)
	target := reg.GroundOf(st)
	if target == paint {
		return nil
	}
	if st.HasGround() && target == nil {
		return nil
	}

	matches := func(p mapgrid.Position) bool {
		if !m.InBounds(p) {
			return false
		}
		t := m.Tile(p)
		if target == nil {
			return !t.HasGround()
		}
		return reg.GroundOf(t) == target
	}

	clear(f.visited)
	half := f.window / 2
	ox, oy := seed.X-half, seed.Y-half
	budget := f.Budget()
	visited := 0

	var out []mapgrid.Position
	stack := []mapgrid.Position{seed}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		lx, ly := p.X-ox, p.Y-oy
		if lx < 0 || ly < 0 || lx >= f.window || ly >= f.window {
			continue
		}
		idx := ly*f.window + lx
		if f.visited[idx] {
			continue
		}
		f.visited[idx] = true
		if visited++; visited > budget {
			break
		}
		if !matches(p) {
			continue
		}
		out = append(out, p)
		// popped west, north, east, south
		stack = append(stack, p.Offset(0, 1), p.Offset(1, 0), p.Offset(0, -1), p.Offset(-1, 0))
	}
	return out
}
