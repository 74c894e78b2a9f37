package paint

import (
	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/mapgrid"
)

// Preview mirrors a window of the real map around every point of a
// gesture, replays the gesture against it and keeps only the tiles the gesture would change.
// It is owned by one goroutine; the buffer is replaced on every Update.
type Preview struct {
	p   *Pipeline
	buf *mapgrid.Map
}

func NewPreview(p *Pipeline) *Preview {
	return &Preview{p: p}
}

// Buffer returns the scratch map holding the changed tiles, or nil before
// the first Update.
func (v *Preview) Buffer() *mapgrid.Map { return v.buf }

// Clear drops the previewed tiles.
func (v *Preview) Clear() {
	if v.buf != nil {
		v.buf.Clear()
	}
}

// Update recomputes the preview of g against m. It never writes to m.
func (v *Preview) Update(m *mapgrid.Map, g Gesture) {
	env := v.p.env
	if !env.Settings.AutoBorder || g.Brush == nil || !g.Brush.NeedsBorders() || len(g.Points) == 0 {
		v.Clear()
		return
	}
	if len(g.Points) > 1 && !g.Brush.CanDrag() {
		g.Points = g.Points[:1]
	}
	v.copyWindow(m, g)

	draw, halo := v.p.tileSets(v.buf, g)
	if err := apply(v.buf, v.p.stageDraw(v.buf, g, draw, halo)); err != nil {
		v.Clear()
		return
	}

	region := newPositions()
	region.add(halo.list...)
	region.add(draw...)
	v.resolve(g, region.list)
	v.prune(m)
}

func (v *Preview) copyWindow(m *mapgrid.Map, g Gesture) {
	if v.buf == nil || v.buf.Width() != m.Width() || v.buf.Height() != m.Height() {
		v.buf = mapgrid.New(m.Width(), m.Height())
	} else {
		v.buf.Clear()
	}
	r := g.Size + v.p.env.Settings.PreviewMargin
	for _, at := range g.Points {
		for y := at.Y - r; y <= at.Y+r; y++ {
			for x := at.X - r; x <= at.X+r; x++ {
				if v.buf.TileAt(x, y, at.Z) != nil {
					continue
				}
				if t := m.TileAt(x, y, at.Z); t != nil {
					v.buf.SetTile(t.DeepCopy(), true)
				}
			}
		}
	}
}

// resolve runs the border passes for g's brush family directly on the
// buffer tiles at ps.
func (v *Preview) resolve(g Gesture, ps []mapgrid.Position) {
	res := v.p.res
	var fn func(*mapgrid.Tile)
	switch familyOf(g.Brush) {
	case familyGround:
		eraser := g.Erase || g.Brush.Kind == brush.KindEraser
		fn = func(t *mapgrid.Tile) {
			if eraser {
				res.Walls(v.buf, t)
				res.Tables(v.buf, t)
				res.Carpets(v.buf, t)
			}
			res.Ground(v.buf, t)
		}
	case familyWall, familyDoor:
		fn = func(t *mapgrid.Tile) { res.Walls(v.buf, t) }
	case familyTableCarpet:
		fn = func(t *mapgrid.Tile) {
			res.Tables(v.buf, t)
			res.Carpets(v.buf, t)
		}
	case familyDoodad:
		fn = func(t *mapgrid.Tile) {
			res.Ground(v.buf, t)
			res.Walls(v.buf, t)
		}
	default:
		return
	}
	for _, pos := range ps {
		t := v.buf.Tile(pos)
		if t == nil {
			continue
		}
		fn(t)
		if t.Empty() {
			v.buf.RemoveTile(pos)
		}
	}
}

// prune deletes every buffer tile whose content matches the real map.
func (v *Preview) prune(m *mapgrid.Map) {
	var same []mapgrid.Position
	v.buf.Each(func(t *mapgrid.Tile) {
		if t.SameContent(m.Tile(t.Position())) {
			same = append(same, t.Position())
		}
	})
	for _, pos := range same {
		v.buf.RemoveTile(pos)
	}
}
