package paint

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/milk9111/tilebrush/border"
	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/mapgrid"
)

// Gesture is one press-to-release interaction with the active brush.
type Gesture struct {
	Brush *brush.Brush
	// Points are the anchor positions visited while dragging. A click has
	// one.
	Points []mapgrid.Position
	Size   int
	Shape  Shape
	Erase  bool
	Alt    bool
	// Fill turns a ground gesture into a bucket fill from Points[0].
	Fill bool
	// Replace restricts a ground draw to tiles of this ground brush.
	Replace     *brush.Brush
	SpawnRadius int
	// Doodad is the buffer placed by a doodad gesture. When nil one is
	// generated from the brush.
	Doodad *DoodadBuffer
}

// positions is an insertion-ordered set of tile positions.
type positions struct {
	seen mapset.Set[mapgrid.Position]
	list []mapgrid.Position
}

func newPositions() *positions {
	return &positions{seen: mapset.New[mapgrid.Position]()}
}

func (s *positions) add(ps ...mapgrid.Position) {
	for _, p := range ps {
		if s.seen.Has(p) {
			continue
		}
		s.seen.Put(p)
		s.list = append(s.list, p)
	}
}

// around adds p and its 8 neighbours.
func (s *positions) around(p mapgrid.Position) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			s.add(p.Offset(dx, dy))
		}
	}
}

type family uint8

const (
	familyGround family = iota
	familyWall
	familyTableCarpet
	familyDoor
	familyDoodad
	familyPlain
	familySingle
)

func familyOf(b *brush.Brush) family {
	switch b.Kind {
	case brush.KindGround, brush.KindEraser:
		return familyGround
	case brush.KindWall:
		return familyWall
	case brush.KindTable, brush.KindCarpet:
		return familyTableCarpet
	case brush.KindDoor:
		return familyDoor
	case brush.KindDoodad:
		return familyDoodad
	case brush.KindFlag, brush.KindOptionalBorder, brush.KindRaw, brush.KindHouse:
		return familyPlain
	case brush.KindSpawn, brush.KindCreature, brush.KindHouseExit, brush.KindWaypoint:
		return familySingle
	}
	return familyPlain
}

// Pipeline turns gestures into staged tile replacements and commits them:
// first the draw, then the border pass over the halo.
type Pipeline struct {
	env  *Env
	fill *FloodFill
	res  *border.Resolver
}

func NewPipeline(env *Env) *Pipeline {
	return &Pipeline{
		env:  env,
		fill: NewFloodFill(env.Settings.FillWindow),
		res:  env.resolver(),
	}
}

func (p *Pipeline) Env() *Env { return p.env }

// Apply runs g against m. The draw is committed before the border pass
// reads the map. Nothing is written to m except through c.
func (p *Pipeline) Apply(m *mapgrid.Map, g Gesture, c Committer) error {
	if g.Brush == nil || len(g.Points) == 0 {
		return nil
	}
	if len(g.Points) > 1 && !g.Brush.CanDrag() {
		g.Points = g.Points[:1]
	}
	if gr, ok := c.(Grouper); ok {
		gr.Begin()
		defer gr.End()
	}
	draw, halo := p.tileSets(m, g)
	if err := commit(c, m, p.stageDraw(m, g, draw, halo)); err != nil {
		return err
	}
	return commit(c, m, p.stageBorders(m, g, halo))
}

func commit(c Committer, m *mapgrid.Map, a *Action) error {
	if a.Empty() {
		return nil
	}
	return c.Commit(m, a)
}

// tileSets returns the draw set and the halo for every point of g.
func (p *Pipeline) tileSets(m *mapgrid.Map, g Gesture) ([]mapgrid.Position, *positions) {
	draw, halo := newPositions(), newPositions()
	switch {
	case familyOf(g.Brush) == familyDoor:
		at := g.Points[0]
		draw.add(at)
		halo.add(at.Offset(0, -1), at.Offset(1, 0), at.Offset(0, 1), at.Offset(-1, 0))
	case g.Fill && g.Brush.Kind == brush.KindGround && !g.Erase:
		for _, pos := range p.fill.Region(m, p.env.Brushes, g.Points[0], g.Brush) {
			draw.add(pos)
			halo.around(pos)
		}
	case g.Brush.OneSizeFitsAll():
		for _, pt := range g.Points {
			draw.add(pt)
			halo.around(pt)
		}
	default:
		for _, pt := range g.Points {
			d, h := AffectedTiles(pt, g.Size, g.Shape)
			draw.add(d...)
			halo.add(h...)
		}
	}
	return draw.list, halo
}

// stageDraw performs the brush's own draw or undraw over the draw set.
// Undrawing ground adds the touched tiles to halo.
func (p *Pipeline) stageDraw(m *mapgrid.Map, g Gesture, draw []mapgrid.Position, halo *positions) *Action {
	switch familyOf(g.Brush) {
	case familyGround:
		return p.drawGround(m, g, draw, halo)
	case familyWall:
		if g.Alt && !g.Erase {
			return p.smearWalls(m, g, draw, halo)
		}
		return p.drawWalls(m, g, draw)
	case familyDoodad:
		return p.drawDoodad(m, g, draw, halo)
	case familySingle:
		return p.drawSingle(m, g, draw)
	}
	return p.drawEach(m, g, draw)
}

// stageBorders re-resolves the halo against the committed map.
func (p *Pipeline) stageBorders(m *mapgrid.Map, g Gesture, halo *positions) *Action {
	auto := p.env.Settings.AutoBorder
	a := &Action{}
	switch familyOf(g.Brush) {
	case familyGround:
		if !auto {
			return nil
		}
		eraser := g.Erase || g.Brush.Kind == brush.KindEraser
		for _, pos := range halo.list {
			t := m.Tile(pos)
			if t == nil {
				continue
			}
			t = t.DeepCopy()
			if eraser {
				p.res.Walls(m, t)
				p.res.Tables(m, t)
				p.res.Carpets(m, t)
			}
			p.res.Ground(m, t)
			a.StageIfChanged(m, t)
		}
	case familyWall, familyDoor:
		if !auto || (g.Alt && !g.Erase && familyOf(g.Brush) == familyWall) {
			return nil
		}
		p.each(m, a, halo.list, func(t *mapgrid.Tile) { p.res.Walls(m, t) })
	case familyTableCarpet:
		for _, pos := range halo.list {
			t := m.Tile(pos)
			if t == nil {
				continue
			}
			if g.Brush.Kind == brush.KindTable {
				if _, ok := t.Table(); !ok {
					continue
				}
				t = t.DeepCopy()
				p.res.Tables(m, t)
			} else {
				if _, ok := t.Carpet(); !ok {
					continue
				}
				t = t.DeepCopy()
				p.res.Carpets(m, t)
			}
			a.StageIfChanged(m, t)
		}
	case familyDoodad:
		if !auto {
			return nil
		}
		p.each(m, a, halo.list, func(t *mapgrid.Tile) {
			p.res.Ground(m, t)
			p.res.Walls(m, t)
		})
	default:
		return nil
	}
	return a
}

// Reborder runs every border pass over the existing tiles at ps, reading
// the map as it stands, and commits the result as one action.
func (p *Pipeline) Reborder(m *mapgrid.Map, ps []mapgrid.Position, c Committer) error {
	a := &Action{}
	p.each(m, a, ps, func(t *mapgrid.Tile) {
		p.res.Ground(m, t)
		p.res.Walls(m, t)
		p.res.Tables(m, t)
		p.res.Carpets(m, t)
	})
	return commit(c, m, a)
}

// each resolves copies of the existing tiles at ps with fn.
func (p *Pipeline) each(m *mapgrid.Map, a *Action, ps []mapgrid.Position, fn func(*mapgrid.Tile)) {
	for _, pos := range ps {
		t := m.Tile(pos)
		if t == nil {
			continue
		}
		t = t.DeepCopy()
		fn(t)
		a.StageIfChanged(m, t)
	}
}

func (p *Pipeline) drawGround(m *mapgrid.Map, g Gesture, draw []mapgrid.Position, halo *positions) *Action {
	ctx := p.env.drawContext(g)
	auto := p.env.Settings.AutoBorder
	a := &Action{}
	for _, pos := range draw {
		t := a.Edit(m, pos)
		if t == nil {
			continue
		}
		if auto {
			border.CleanGround(t)
		}
		if g.Erase {
			g.Brush.Undraw(m, t, ctx)
			halo.add(pos)
		} else {
			g.Brush.Draw(m, t, ctx)
		}
		a.Stage(m, t)
	}
	return a
}

func (p *Pipeline) drawWalls(m *mapgrid.Map, g Gesture, draw []mapgrid.Position) *Action {
	ctx := p.env.drawContext(g)
	a := &Action{}
	for _, pos := range draw {
		t := a.Edit(m, pos)
		if t == nil {
			continue
		}
		border.CleanWalls(t)
		if !g.Erase {
			g.Brush.Draw(m, t, ctx)
		}
		a.Stage(m, t)
	}
	return a
}

// smearWalls builds the wall run in a scratch copy of the neighbourhood,
// shapes it there, and stages every drawn and halo tile in one go.
func (p *Pipeline) smearWalls(m *mapgrid.Map, g Gesture, draw []mapgrid.Position, halo *positions) *Action {
	ctx := p.env.drawContext(g)
	scratch := mapgrid.New(m.Width(), m.Height())
	touched := newPositions()
	touched.add(draw...)
	touched.add(halo.list...)
	region := newPositions()
	for _, pos := range touched.list {
		region.around(pos)
	}
	for _, pos := range region.list {
		if t := m.Tile(pos); t != nil {
			scratch.SetTile(t.DeepCopy(), true)
		}
	}
	for _, pos := range draw {
		t := scratch.Tile(pos)
		if t == nil {
			if t = scratch.Allocate(scratch.CreateLocation(pos)); t == nil {
				continue
			}
		}
		border.CleanWalls(t)
		g.Brush.Draw(scratch, t, ctx)
		scratch.SetTile(t, true)
	}
	if p.env.Settings.AutoBorder {
		for _, pos := range touched.list {
			if t := scratch.Tile(pos); t != nil {
				p.res.Walls(scratch, t)
			}
		}
	}

	a := &Action{}
	for _, pos := range touched.list {
		if t := scratch.Tile(pos); t != nil {
			a.StageIfChanged(m, t.DeepCopy())
		}
	}
	return a
}

// drawEach runs the brush over every tile of the draw set.
func (p *Pipeline) drawEach(m *mapgrid.Map, g Gesture, draw []mapgrid.Position) *Action {
	ctx := p.env.drawContext(g)
	auto := p.env.Settings.AutoBorder
	a := &Action{}
	for _, pos := range draw {
		t := a.Edit(m, pos)
		if t == nil {
			continue
		}
		if g.Erase {
			g.Brush.Undraw(m, t, ctx)
		} else {
			g.Brush.Draw(m, t, ctx)
		}
		if auto && g.Brush.Kind == brush.KindOptionalBorder {
			p.res.Ground(m, t)
		}
		a.Stage(m, t)
	}
	return a
}

// drawSingle handles the one-tile brushes. Map-level markers are staged as
// marks so they only change on commit.
func (p *Pipeline) drawSingle(m *mapgrid.Map, g Gesture, draw []mapgrid.Position) *Action {
	ctx := p.env.drawContext(g)
	a := &Action{}
	for _, pos := range draw {
		switch g.Brush.Kind {
		case brush.KindHouseExit, brush.KindWaypoint:
			a.AddMark(Mark{Brush: g.Brush, Pos: pos, Erase: g.Erase})
			continue
		}
		t := a.Edit(m, pos)
		if t == nil {
			continue
		}
		if g.Erase {
			g.Brush.Undraw(m, t, ctx)
		} else {
			g.Brush.Draw(m, t, ctx)
		}
		a.Stage(m, t)
	}
	return a
}
