package paint

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/mapgrid"
)

const doodadBufferSize = 64

// DoodadBuffer is a scratch map holding the tiles one doodad placement
// stamps onto the map, laid out around Origin.
type DoodadBuffer struct {
	m      *mapgrid.Map
	origin mapgrid.Position
}

func NewDoodadBuffer() *DoodadBuffer {
	return &DoodadBuffer{
		m:      mapgrid.New(doodadBufferSize, doodadBufferSize),
		origin: mapgrid.Pos(doodadBufferSize/2, doodadBufferSize/2, mapgrid.GroundFloor),
	}
}

func (d *DoodadBuffer) Origin() mapgrid.Position { return d.origin }

func (d *DoodadBuffer) Clear() { d.m.Clear() }

func (d *DoodadBuffer) Len() int { return d.m.Len() }

// Put adds items to the buffer tile at the given offset from the origin.
func (d *DoodadBuffer) Put(dx, dy, dz int, items ...mapgrid.Item) bool {
	p := mapgrid.Pos(d.origin.X+dx, d.origin.Y+dy, d.origin.Z+dz)
	t := d.m.Tile(p)
	if t == nil {
		if t = d.m.Allocate(d.m.CreateLocation(p)); t == nil {
			return false
		}
	}
	for _, it := range items {
		t.AddItem(it)
	}
	d.m.SetTile(t, true)
	return true
}

// FillFromBrush replaces the buffer with one random placement of b: a
// single item or one of its composites, weighted by chance.
func (d *DoodadBuffer) FillFromBrush(b *brush.Brush, reg *brush.Registry, src autoborder.Source) bool {
	d.Clear()
	if b == nil || b.Kind != brush.KindDoodad {
		return false
	}
	spec := b.Doodad
	single := autoborder.Total(spec.Items)
	total := single
	for _, c := range spec.Composites {
		if c.Chance > 0 {
			total += c.Chance
		}
	}
	if total == 0 {
		return false
	}
	intN := rand.IntN
	if src != nil {
		intN = src.IntN
	}
	roll := intN(total) + 1
	if roll <= single {
		id := autoborder.NewPicker(src).Pick(autoborder.Table{Slots: [][]autoborder.Weighted{spec.Items}}, 0)
		return id != 0 && d.Put(0, 0, 0, makeItem(reg, b, id))
	}
	roll -= single
	for _, c := range spec.Composites {
		if c.Chance <= 0 {
			continue
		}
		if roll > c.Chance {
			roll -= c.Chance
			continue
		}
		for _, ct := range c.Tiles {
			items := make([]mapgrid.Item, 0, len(ct.Items))
			for _, id := range ct.Items {
				items = append(items, makeItem(reg, b, id))
			}
			d.Put(ct.DX, ct.DY, ct.DZ, items...)
		}
		return d.Len() > 0
	}
	return false
}

func makeItem(reg *brush.Registry, b *brush.Brush, id uint16) mapgrid.Item {
	if owner := reg.OfItem(id); owner != nil && owner != b {
		return reg.MakeItem(id)
	}
	it := mapgrid.Item{ID: id}
	if b.Doodad.Blocking {
		it.Flags = mapgrid.FlagBlocking
	}
	return it
}

// each calls fn with every buffer tile and its offset from the origin.
func (d *DoodadBuffer) each(fn func(dx, dy, dz int, t *mapgrid.Tile)) {
	var tiles []*mapgrid.Tile
	d.m.Each(func(t *mapgrid.Tile) { tiles = append(tiles, t) })
	sortTiles(tiles)
	for _, t := range tiles {
		p := t.Position()
		fn(p.X-d.origin.X, p.Y-d.origin.Y, p.Z-d.origin.Z, t)
	}
}

func sortTiles(tiles []*mapgrid.Tile) {
	slices.SortFunc(tiles, func(a, b *mapgrid.Tile) int {
		pa, pb := a.Position(), b.Position()
		if c := cmp.Compare(pa.Z, pb.Z); c != 0 {
			return c
		}
		if c := cmp.Compare(pa.Y, pb.Y); c != 0 {
			return c
		}
		return cmp.Compare(pa.X, pb.X)
	})
}

// drawDoodad stamps the doodad buffer at every point, or erases the brush's
// items over the draw set.
func (p *Pipeline) drawDoodad(m *mapgrid.Map, g Gesture, draw []mapgrid.Position, halo *positions) *Action {
	if g.Erase {
		return p.drawEach(m, g, draw)
	}
	buf := g.Doodad
	if buf == nil {
		buf = NewDoodadBuffer()
		if !buf.FillFromBrush(g.Brush, p.env.Brushes, p.env.Rand) {
			return nil
		}
	}
	spec := g.Brush.Doodad
	a := &Action{}
	walls := mapset.New[mapgrid.Position]()
	placed := newPositions()
	for _, pt := range g.Points {
		buf.each(func(dx, dy, dz int, src *mapgrid.Tile) {
			pos := mapgrid.Pos(pt.X+dx, pt.Y+dy, pt.Z+dz)
			cur := a.Tile(m, pos)
			if cur.IsBlocking() && !spec.OnBlocking && !g.Alt {
				return
			}
			if !spec.OnDuplicate && !g.Alt && cur != nil && cur.FindItem(func(it mapgrid.Item) bool { return spec.Owns(it.ID) }) >= 0 {
				return
			}
			t := a.Edit(m, pos)
			if t == nil {
				return
			}
			if src.Ground != nil {
				ground := *src.Ground
				t.Ground = &ground
			}
			for _, it := range src.Items {
				if it.IsWall() {
					walls.Put(pos)
				}
				t.AddItem(it)
			}
			if walls.Has(pos) {
				dedupeWalls(t)
			}
			a.Stage(m, t)
			placed.add(pos)
		})
	}
	halo.list, halo.seen = nil, mapset.New[mapgrid.Position]()
	for _, pos := range placed.list {
		halo.around(pos)
	}
	return a
}

// dedupeWalls keeps only the topmost wall on t.
func dedupeWalls(t *mapgrid.Tile) {
	last := -1
	for i, it := range t.Items {
		if it.IsWall() {
			last = i
		}
	}
	if last < 0 {
		return
	}
	keep := t.Items[last]
	t.RemoveItems(mapgrid.Item.IsWall)
	t.AddItem(keep)
}
