package brush

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/mapgrid"
)

func TestNextIDUnique(t *testing.T) {
	const workers, per = 8, 200
	ids := make(chan ID, workers*per)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < per; j++ {
				ids <- NextID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[ID]bool)
	for id := range ids {
		if id == 0 || id == FriendOfAll {
			t.Fatalf("reserved id allocated: %d", id)
		}
		if seen[id] {
			t.Fatalf("id %d allocated twice", id)
		}
		seen[id] = true
	}
}

func TestFriendOf(t *testing.T) {
	cases := []struct {
		name    string
		friends FriendList
		other   ID
		want    bool
	}{
		{"listed", FriendList{IDs: []ID{4, 9}}, 9, true},
		{"not_listed", FriendList{IDs: []ID{4, 9}}, 5, false},
		{"friend_of_all", FriendList{IDs: []ID{FriendOfAll}}, 77, true},
		{"hate_listed", FriendList{IDs: []ID{4}, Hate: true}, 4, false},
		{"hate_unlisted", FriendList{IDs: []ID{4}, Hate: true}, 5, true},
		{"empty", FriendList{}, 5, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewGround("g", GroundSpec{Friends: c.friends})
			if got := b.FriendOf(c.other); got != c.want {
				t.Fatalf("FriendOf(%d) = %v, want %v", c.other, got, c.want)
			}
		})
	}

	if NewEraser("e").FriendOf(1) {
		t.Fatalf("non-terrain brush has friends")
	}
}

func TestCapabilities(t *testing.T) {
	cases := []struct {
		b                            *Brush
		borders, drag, single, terra bool
	}{
		{NewGround("grass", GroundSpec{}), true, true, false, true},
		{NewWall("stone wall", WallSpec{}), true, true, false, true},
		{NewDoor("door", DoorSpec{}), true, false, true, false},
		{NewCarpet("rug", CarpetSpec{}), true, true, false, true},
		{NewSpawn("spawn"), false, false, true, false},
		{NewWaypoint("wp", WaypointSpec{Waypoint: "temple"}), false, false, true, false},
		{NewDoodad("tree", DoodadSpec{OneSize: true}), true, false, true, false},
		{NewEraser("eraser"), true, true, false, false},
	}
	for _, c := range cases {
		if c.b.NeedsBorders() != c.borders || c.b.CanDrag() != c.drag ||
			c.b.OneSizeFitsAll() != c.single || c.b.IsTerrain() != c.terra {
			t.Errorf("%s (%v): borders=%v drag=%v single=%v terrain=%v", c.b.Name, c.b.Kind,
				c.b.NeedsBorders(), c.b.CanDrag(), c.b.OneSizeFitsAll(), c.b.IsTerrain())
		}
	}
	var none *Brush
	if none.NeedsBorders() || none.CanDrag() {
		t.Fatalf("nil brush reports capabilities")
	}
}

func TestBorderToward(t *testing.T) {
	g := &GroundSpec{Borders: []GroundBorder{
		{To: FriendOfAll, BorderID: 1},
		{To: 42, BorderID: 2},
		{To: 0, BorderID: 3},
	}}
	cases := []struct {
		to   ID
		want int
	}{{42, 2}, {7, 1}, {0, 3}}
	for _, c := range cases {
		if got, ok := g.BorderToward(c.to); !ok || got != c.want {
			t.Errorf("BorderToward(%d) = %d, %v; want %d", c.to, got, ok, c.want)
		}
	}
	if _, ok := (&GroundSpec{Borders: []GroundBorder{{To: FriendOfAll, BorderID: 1}}}).BorderToward(0); ok {
		t.Fatalf("FriendOfAll border applied to groundless tiles")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	grass := NewGround("grass", GroundSpec{Items: []autoborder.Weighted{{ItemID: 4526, Chance: 1}}})
	if err := r.Add(grass); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(NewGround("grass", GroundSpec{})); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate Add err = %v", err)
	}
	if err := r.Add(NewGround("Grass", GroundSpec{})); err != nil {
		t.Fatalf("names should be case-sensitive: %v", err)
	}
	if r.Get("grass") != grass || r.ByID(grass.ID) != grass || r.OfItem(4526) != grass {
		t.Fatalf("lookups disagree")
	}
	if r.Get("GRASS") != nil {
		t.Fatalf("case-insensitive lookup")
	}

	tile := mapgrid.NewTile(mapgrid.Pos(1, 1, 7))
	if r.GroundOf(tile) != nil {
		t.Fatalf("groundless tile has a ground brush")
	}
	tile.Ground = &mapgrid.Item{ID: 4526, Flags: mapgrid.FlagGround}
	if r.GroundOf(tile) != grass {
		t.Fatalf("GroundOf = %v", r.GroundOf(tile))
	}
	if it := r.MakeItem(4526); !it.Has(mapgrid.FlagGround) {
		t.Fatalf("MakeItem lost the ground flag")
	}
	if got := len(r.All()); got != 2 {
		t.Fatalf("All() has %d brushes", got)
	}
}

func newWallWithDoor() *Brush {
	w := NewWall("brick wall", WallSpec{})
	w.Wall.Table.Add(int(autoborder.WallPole), autoborder.Weighted{ItemID: 1000, Chance: 1})
	w.Wall.Table.Add(int(autoborder.WallHorizontal), autoborder.Weighted{ItemID: 1001, Chance: 1})
	w.Wall.Doors[autoborder.WallHorizontal] = []DoorItem{
		{ID: 1100, Type: DoorNormal},
		{ID: 1101, Type: DoorNormal, Open: true},
		{ID: 1102, Type: DoorLocked},
	}
	return w
}

func TestDoorDrawUndraw(t *testing.T) {
	r := NewRegistry()
	wall := newWallWithDoor()
	door := NewDoor("locked door", DoorSpec{Type: DoorLocked})
	for _, b := range []*Brush{wall, door} {
		if err := r.Add(b); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	ctx := &DrawContext{Registry: r, Rand: rand.New(rand.NewPCG(1, 1))}

	tile := mapgrid.NewTile(mapgrid.Pos(0, 0, 7))
	tile.AddItem(mapgrid.Item{ID: 5})
	tile.AddItem(r.MakeItem(1001))
	door.Draw(nil, tile, ctx)
	if tile.Items[1].ID != 1102 || !tile.Items[1].IsDoor() {
		t.Fatalf("door not placed in the wall's slot: %+v", tile.Items)
	}
	door.Undraw(nil, tile, ctx)
	if tile.Items[1].ID != 1001 || tile.Items[1].IsDoor() {
		t.Fatalf("door not reverted to wall: %+v", tile.Items)
	}

	bare := mapgrid.NewTile(mapgrid.Pos(1, 0, 7))
	door.Draw(nil, bare, ctx)
	if len(bare.Items) != 0 {
		t.Fatalf("door placed without a wall")
	}
}

func TestGroundDraw(t *testing.T) {
	r := NewRegistry()
	grass := NewGround("grass", GroundSpec{Items: []autoborder.Weighted{{ItemID: 10, Chance: 1}}})
	sand := NewGround("sand", GroundSpec{Items: []autoborder.Weighted{{ItemID: 20, Chance: 1}}})
	water := NewGround("water", GroundSpec{Items: []autoborder.Weighted{{ItemID: 30, Chance: 1}}})
	for _, b := range []*Brush{grass, sand, water} {
		if err := r.Add(b); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	sandy := mapgrid.NewTile(mapgrid.Pos(0, 0, 7))
	sandy.Ground = &mapgrid.Item{ID: 20, Flags: mapgrid.FlagGround}
	wet := mapgrid.NewTile(mapgrid.Pos(1, 0, 7))
	wet.Ground = &mapgrid.Item{ID: 30, Flags: mapgrid.FlagGround}

	ctx := &DrawContext{Registry: r, Replace: sand}
	grass.Draw(nil, sandy, ctx)
	grass.Draw(nil, wet, ctx)
	if sandy.Ground.ID != 10 {
		t.Fatalf("replace mode skipped a matching tile")
	}
	if wet.Ground.ID != 30 {
		t.Fatalf("replace mode painted over another ground")
	}

	sand.Undraw(nil, wet, ctx)
	if wet.Ground == nil {
		t.Fatalf("undraw removed a foreign ground")
	}
	water.Undraw(nil, wet, ctx)
	if wet.Ground != nil {
		t.Fatalf("undraw kept its own ground")
	}
}

func TestMarkerBrushes(t *testing.T) {
	m := mapgrid.New(8, 8)
	tile := mapgrid.NewTile(mapgrid.Pos(2, 3, 7))
	tile.Ground = &mapgrid.Item{ID: 1, Flags: mapgrid.FlagGround}

	exit := NewHouseExit("exit", HouseSpec{HouseID: 12})
	exit.Draw(m, tile, nil)
	if p, ok := m.HouseExit(12); !ok || p != tile.Position() {
		t.Fatalf("house exit = %v, %v", p, ok)
	}
	exit.Undraw(m, tile, nil)
	if _, ok := m.HouseExit(12); ok {
		t.Fatalf("house exit survived undraw")
	}

	wp := NewWaypoint("wp", WaypointSpec{Waypoint: "temple"})
	wp.Draw(m, tile, nil)
	if names := m.WaypointsAt(tile.Position()); len(names) != 1 || names[0] != "temple" {
		t.Fatalf("waypoints = %v", names)
	}

	spawn := NewSpawn("spawn")
	spawn.Draw(m, tile, &DrawContext{SpawnRadius: 4})
	if tile.Spawn == nil || tile.Spawn.Radius != 4 {
		t.Fatalf("spawn = %+v", tile.Spawn)
	}
}
