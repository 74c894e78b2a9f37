package paint

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/mapgrid"
	"github.com/milk9111/tilebrush/settings"
)

const floor = mapgrid.GroundFloor

type world struct {
	env    *Env
	pipe   *Pipeline
	grass  *brush.Brush
	water  *brush.Brush
	wall   *brush.Brush
	door   *brush.Brush
	table  *brush.Brush
	bush   *brush.Brush
	exit   *brush.Brush
	marker *brush.Brush
}

func newWorld(t *testing.T) *world {
	t.Helper()
	borders := autoborder.NewCatalog()
	ab := autoborder.New(1)
	for i := 1; i < autoborder.AlignmentCount; i++ {
		ab.Table.Add(i, autoborder.Weighted{ItemID: 100 + uint16(i), Chance: 1})
	}
	if err := borders.Add(ab); err != nil {
		t.Fatalf("add border: %v", err)
	}

	w := &world{}
	w.grass = brush.NewGround("grass", brush.GroundSpec{
		ZOrder:  2,
		Items:   []autoborder.Weighted{{ItemID: 10, Chance: 1}},
		Borders: []brush.GroundBorder{{To: brush.FriendOfAll, BorderID: 1}},
	})
	w.water = brush.NewGround("water", brush.GroundSpec{
		ZOrder: 1,
		Items:  []autoborder.Weighted{{ItemID: 20, Chance: 1}},
	})
	w.wall = brush.NewWall("wall", brush.WallSpec{})
	for a := 0; a < autoborder.WallAlignmentCount; a++ {
		w.wall.Wall.Table.Add(a, autoborder.Weighted{ItemID: 1000 + uint16(a), Chance: 1})
	}
	w.wall.Wall.Doors[autoborder.WallVertical] = []brush.DoorItem{{ID: 1101, Type: brush.DoorNormal}, {ID: 1102, Type: brush.DoorLocked}}
	w.door = brush.NewDoor("locked door", brush.DoorSpec{Type: brush.DoorLocked})
	w.table = brush.NewTable("table", brush.TableSpec{})
	for a := 0; a < autoborder.TableAlignmentCount; a++ {
		w.table.Table.Table.Add(a, autoborder.Weighted{ItemID: 2000 + uint16(a), Chance: 1})
	}
	w.bush = brush.NewDoodad("bush", brush.DoodadSpec{
		Items: []autoborder.Weighted{{ItemID: 4000, Chance: 1}},
	})
	w.exit = brush.NewHouseExit("exit", brush.HouseSpec{HouseID: 3})
	w.marker = brush.NewWaypoint("home", brush.WaypointSpec{Waypoint: "home"})

	reg := brush.NewRegistry()
	for _, b := range []*brush.Brush{w.grass, w.water, w.wall, w.door, w.table, w.bush, w.exit, w.marker} {
		if err := reg.Add(b); err != nil {
			t.Fatalf("add brush: %v", err)
		}
	}
	w.env = &Env{
		Brushes:  reg,
		Borders:  borders,
		Settings: settings.Default(),
		Rand:     rand.New(rand.NewPCG(1, 2)),
	}
	w.pipe = NewPipeline(w.env)
	return w
}

// ground fills a grid from rows of letters: g grass, w water, '.' nothing.
func ground(m *mapgrid.Map, rows ...string) {
	ids := map[byte]uint16{'g': 10, 'w': 20}
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			id, ok := ids[row[x]]
			if !ok {
				continue
			}
			t := mapgrid.NewTile(mapgrid.Pos(x, y, floor))
			t.Ground = &mapgrid.Item{ID: id, Flags: mapgrid.FlagGround}
			m.SetTile(t, true)
		}
	}
}

func itemIDs(t *mapgrid.Tile) []uint16 {
	if t == nil {
		return nil
	}
	ids := make([]uint16, 0, len(t.Items))
	for _, it := range t.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

func equalIDs(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func click(b *brush.Brush, x, y int) Gesture {
	return Gesture{Brush: b, Points: []mapgrid.Position{mapgrid.Pos(x, y, floor)}}
}

func drag(b *brush.Brush, pts ...[2]int) Gesture {
	g := Gesture{Brush: b}
	for _, p := range pts {
		g.Points = append(g.Points, mapgrid.Pos(p[0], p[1], floor))
	}
	return g
}

func mustApply(t *testing.T, p *Pipeline, m *mapgrid.Map, g Gesture, c Committer) {
	t.Helper()
	if err := p.Apply(m, g, c); err != nil {
		t.Fatalf("apply %s: %v", g.Brush, err)
	}
}
