package paint

import (
	"testing"

	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/mapgrid"
)

func TestPaintOverLowerGround(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(5, 5)
	ground(m, "ggggg", "ggggg", "ggwgg", "ggggg", "ggggg")

	mustApply(t, w.pipe, m, click(w.grass, 2, 2), MapCommitter{})

	m.Each(func(tile *mapgrid.Tile) {
		if tile.Ground.ID != 10 {
			t.Fatalf("%v ground = %d", tile.Position(), tile.Ground.ID)
		}
		if len(tile.Items) != 0 {
			t.Fatalf("%v kept borders %v", tile.Position(), itemIDs(tile))
		}
	})
}

func TestPaintLowerGroundGetsBorders(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(5, 5)
	ground(m, "ggggg", "ggggg", "ggggg", "ggggg", "ggggg")

	mustApply(t, w.pipe, m, click(w.water, 2, 2), MapCommitter{})

	center := m.TileAt(2, 2, floor)
	if center.Ground.ID != 20 {
		t.Fatalf("center ground = %d", center.Ground.ID)
	}
	if got := itemIDs(center); !equalIDs(got, []uint16{109, 110, 111, 112}) {
		t.Fatalf("center borders = %v", got)
	}
	if got := itemIDs(m.TileAt(1, 2, floor)); len(got) != 0 {
		t.Fatalf("higher neighbour bordered: %v", got)
	}
}

func TestPaintWithoutAutoBorder(t *testing.T) {
	w := newWorld(t)
	w.env.Settings.AutoBorder = false
	m := mapgrid.New(5, 5)
	ground(m, "ggggg", "ggggg", "ggggg")

	mustApply(t, w.pipe, m, click(w.water, 2, 1), MapCommitter{})

	if got := itemIDs(m.TileAt(2, 1, floor)); len(got) != 0 {
		t.Fatalf("borders placed with auto bordering off: %v", got)
	}
}

func TestUndrawDeletesEmptyTile(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(5, 5)
	ground(m, "gg")

	g := click(w.grass, 0, 0)
	g.Erase = true
	mustApply(t, w.pipe, m, g, MapCommitter{})

	if tile := m.TileAt(0, 0, floor); tile != nil {
		t.Fatalf("empty tile kept: %+v", tile)
	}
	if m.Len() != 1 {
		t.Fatalf("map holds %d tiles", m.Len())
	}
}

func TestBucketFill(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(8, 8)
	ground(m,
		"gggggg",
		"gwwwgg",
		"gwwwgg",
		"gwwwgg",
		"gggggg",
	)
	g := click(w.grass, 2, 2)
	g.Fill = true
	mustApply(t, w.pipe, m, g, MapCommitter{})

	m.Each(func(tile *mapgrid.Tile) {
		if tile.Ground.ID != 10 || len(tile.Items) != 0 {
			t.Fatalf("%v after fill: ground %d items %v", tile.Position(), tile.Ground.ID, itemIDs(tile))
		}
	})
}

func TestReplaceOnlyTouchesMatchingGround(t *testing.T) {
	w := newWorld(t)
	w.env.Settings.AutoBorder = false
	m := mapgrid.New(5, 5)
	ground(m, "gwg", "wgw", "gwg")

	g := click(w.water, 1, 1)
	g.Size = 1
	g.Replace = w.grass
	mustApply(t, w.pipe, m, g, MapCommitter{})

	m.Each(func(tile *mapgrid.Tile) {
		if tile.Ground.ID != 20 {
			t.Fatalf("%v ground = %d", tile.Position(), tile.Ground.ID)
		}
	})
}

func TestWallDrag(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(8, 8)

	mustApply(t, w.pipe, m, drag(w.wall, [2]int{1, 1}, [2]int{2, 1}, [2]int{1, 2}), MapCommitter{})

	cases := []struct {
		x, y int
		want autoborder.WallAlignment
	}{
		{1, 1, autoborder.WallSoutheastCorner},
		{2, 1, autoborder.WallEastEnd},
		{1, 2, autoborder.WallSouthEnd},
	}
	for _, c := range cases {
		tile := m.TileAt(c.x, c.y, floor)
		it, ok := tile.Wall()
		if !ok {
			t.Fatalf("(%d,%d) has no wall", c.x, c.y)
		}
		if got, _ := w.wall.Wall.AlignmentOf(it.ID); got != c.want {
			t.Fatalf("(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
	if m.Len() != 3 {
		t.Fatalf("map holds %d tiles, want 3", m.Len())
	}
}

func TestWallSmearWithAlt(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(8, 8)
	g := drag(w.wall, [2]int{1, 1}, [2]int{2, 1}, [2]int{3, 1})
	g.Alt = true
	mustApply(t, w.pipe, m, g, MapCommitter{})

	it, _ := m.TileAt(2, 1, floor).Wall()
	if got, _ := w.wall.Wall.AlignmentOf(it.ID); got != autoborder.WallHorizontal {
		t.Fatalf("middle of smear = %v", got)
	}
}

func TestWallSmearCircleFillsInterior(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(12, 12)
	g := click(w.wall, 5, 5)
	g.Size, g.Shape, g.Alt = 2, Circle, true
	mustApply(t, w.pipe, m, g, MapCommitter{})

	draw, _ := AffectedTiles(mapgrid.Pos(5, 5, floor), 2, Circle)
	for _, pos := range draw {
		if _, ok := m.Tile(pos).Wall(); !ok {
			t.Fatalf("no wall at drawn tile %v", pos)
		}
	}
	it, _ := m.TileAt(5, 5, floor).Wall()
	if got, _ := w.wall.Wall.AlignmentOf(it.ID); got != autoborder.WallIntersection {
		t.Fatalf("center of smear = %v", got)
	}
}

func TestDoorOnWall(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(8, 8)
	mustApply(t, w.pipe, m, drag(w.wall, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2}), MapCommitter{})
	mustApply(t, w.pipe, m, click(w.door, 1, 1), MapCommitter{})

	tile := m.TileAt(1, 1, floor)
	if got := itemIDs(tile); !equalIDs(got, []uint16{1102}) {
		t.Fatalf("door tile = %v, want the vertical locked door", got)
	}
	if !tile.Items[0].IsDoor() {
		t.Fatalf("door flag missing")
	}
	it, _ := m.TileAt(1, 0, floor).Wall()
	if got, _ := w.wall.Wall.AlignmentOf(it.ID); got != autoborder.WallNorthEnd {
		t.Fatalf("wall above door = %v", got)
	}

	g := click(w.door, 1, 1)
	g.Erase = true
	mustApply(t, w.pipe, m, g, MapCommitter{})
	if got := itemIDs(m.TileAt(1, 1, floor)); !equalIDs(got, []uint16{1000 + uint16(autoborder.WallVertical)}) {
		t.Fatalf("undrawn door = %v", got)
	}
}

func TestTablesReshapeWithoutAutoBorder(t *testing.T) {
	w := newWorld(t)
	w.env.Settings.AutoBorder = false
	m := mapgrid.New(8, 8)
	mustApply(t, w.pipe, m, drag(w.table, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}), MapCommitter{})

	want := []autoborder.TableAlignment{autoborder.TableWestEnd, autoborder.TableHorizontal, autoborder.TableEastEnd}
	for x, a := range want {
		if got := itemIDs(m.TileAt(x, 0, floor)); !equalIDs(got, []uint16{2000 + uint16(a)}) {
			t.Fatalf("(%d,0) = %v, want %v", x, got, a)
		}
	}
}

func TestDoodadPolicies(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(8, 8)
	ground(m, "gggg", "gggg", "gggg")
	blocked := m.TileAt(3, 2, floor)
	blocked.AddItem(mapgrid.Item{ID: 77, Flags: mapgrid.FlagBlocking})

	buf := NewDoodadBuffer()
	buf.Put(0, 0, 0, mapgrid.Item{ID: 4000})
	stamp := func(x, y int, alt bool) {
		g := click(w.bush, x, y)
		g.Doodad = buf
		g.Alt = alt
		mustApply(t, w.pipe, m, g, MapCommitter{})
	}
	count := func(x, y int) int {
		n := 0
		for _, id := range itemIDs(m.TileAt(x, y, floor)) {
			if id == 4000 {
				n++
			}
		}
		return n
	}

	stamp(1, 1, false)
	stamp(1, 1, false)
	if n := count(1, 1); n != 1 {
		t.Fatalf("duplicate placed: %d bushes", n)
	}
	stamp(1, 1, true)
	if n := count(1, 1); n != 2 {
		t.Fatalf("alt did not force a duplicate: %d bushes", n)
	}

	stamp(3, 2, false)
	if n := count(3, 2); n != 0 {
		t.Fatalf("placed on blocking tile")
	}
	w.bush.Doodad.OnBlocking = true
	stamp(3, 2, false)
	if n := count(3, 2); n != 1 {
		t.Fatalf("on_blocking doodad not placed")
	}
}

func TestDoodadBufferFromComposite(t *testing.T) {
	w := newWorld(t)
	w.bush.Doodad.Items = nil
	w.bush.Doodad.Composites = []brush.Composite{{
		Chance: 3,
		Tiles: []brush.CompositeTile{
			{DX: 0, DY: 0, Items: []uint16{4001}},
			{DX: 1, DY: 0, Items: []uint16{4002, 4003}},
		},
	}}
	buf := NewDoodadBuffer()
	if !buf.FillFromBrush(w.bush, w.env.Brushes, w.env.Rand) {
		t.Fatalf("composite not generated")
	}
	if buf.Len() != 2 {
		t.Fatalf("buffer holds %d tiles", buf.Len())
	}

	m := mapgrid.New(8, 8)
	g := click(w.bush, 4, 4)
	g.Doodad = buf
	mustApply(t, w.pipe, m, g, MapCommitter{})
	if got := itemIDs(m.TileAt(5, 4, floor)); !equalIDs(got, []uint16{4002, 4003}) {
		t.Fatalf("composite tile = %v", got)
	}
}

func TestDragTruncatedForSingleTileBrushes(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(8, 8)
	ground(m, "gggg")
	mustApply(t, w.pipe, m, drag(w.exit, [2]int{0, 0}, [2]int{3, 0}), MapCommitter{})
	if p, ok := m.HouseExit(3); !ok || p != mapgrid.Pos(0, 0, floor) {
		t.Fatalf("house exit at %v, %v", p, ok)
	}
}

func TestReborder(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(5, 5)
	ground(m, "ggg", "gwg", "ggg")
	var ps []mapgrid.Position
	m.Each(func(tile *mapgrid.Tile) { ps = append(ps, tile.Position()) })

	if err := w.pipe.Reborder(m, ps, MapCommitter{}); err != nil {
		t.Fatalf("Reborder: %v", err)
	}
	if got := itemIDs(m.TileAt(1, 1, floor)); !equalIDs(got, []uint16{109, 110, 111, 112}) {
		t.Fatalf("water borders = %v", got)
	}
	h := NewHistory(5)
	if err := w.pipe.Reborder(m, ps, h); err != nil {
		t.Fatalf("Reborder: %v", err)
	}
	if h.Len() != 0 {
		t.Fatalf("second pass changed %d steps", h.Len())
	}
}
