package brush

import (
	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/mapgrid"
)

// DrawContext carries the optional inputs of Draw and Undraw.
type DrawContext struct {
	Registry *Registry
	Rand     autoborder.Source
	// Replace limits a ground draw to tiles whose ground belongs to this brush.
	Replace     *Brush
	Alt         bool
	SpawnRadius int
}

func (c *DrawContext) registry() *Registry {
	if c == nil {
		return nil
	}
	return c.Registry
}

func (c *DrawContext) pick(t autoborder.Table, slot int) uint16 {
	var src autoborder.Source
	if c != nil {
		src = c.Rand
	}
	return autoborder.NewPicker(src).Pick(t, slot)
}

func (c *DrawContext) pickAny(items []autoborder.Weighted) uint16 {
	return c.pick(autoborder.Table{Slots: [][]autoborder.Weighted{items}}, 0)
}

// Draw applies b to t. The tile must be a private copy; m is only consulted
// for map-level markers such as house exits and waypoints.
func (b *Brush) Draw(m *mapgrid.Map, t *mapgrid.Tile, ctx *DrawContext) {
	if b == nil || t == nil {
		return
	}
	reg := ctx.registry()
	switch b.Kind {
	case KindGround:
		if ctx != nil && ctx.Replace != nil && reg.GroundOf(t) != ctx.Replace {
			return
		}
		if id := ctx.pickAny(b.Ground.Items); id != 0 {
			t.Ground = &mapgrid.Item{ID: id, Flags: mapgrid.FlagGround}
		}
	case KindEraser:
		erase(t, ctx != nil && ctx.Alt)
	case KindWall:
		t.RemoveItems(mapgrid.Item.IsWall)
		if id := ctx.pick(b.Wall.Table, int(autoborder.WallPole)); id != 0 {
			t.AddItem(mapgrid.Item{ID: id, Flags: mapgrid.FlagWall | mapgrid.FlagBlocking})
		}
	case KindDoor:
		drawDoor(b.Door, t, reg)
	case KindTable:
		t.RemoveItems(mapgrid.Item.IsTable)
		if id := ctx.pick(b.Table.Table, int(autoborder.TableAlone)); id != 0 {
			t.AddItem(mapgrid.Item{ID: id, Flags: mapgrid.FlagTable | mapgrid.FlagBlocking})
		}
	case KindCarpet:
		if ctx == nil || !ctx.Alt {
			t.RemoveItems(mapgrid.Item.IsCarpet)
		}
		if id := ctx.pick(b.Carpet.Table, int(autoborder.Center)); id != 0 {
			t.AddItem(mapgrid.Item{ID: id, Flags: mapgrid.FlagCarpet})
		}
	case KindDoodad:
		if id := ctx.pickAny(b.Doodad.Items); id != 0 {
			it := mapgrid.Item{ID: id}
			if b.Doodad.Blocking {
				it.Flags = mapgrid.FlagBlocking
			}
			t.AddItem(it)
		}
	case KindRaw:
		t.AddItem(mapgrid.Item{ID: b.Raw.ItemID, Flags: b.Raw.Flags})
	case KindFlag:
		if t.HasGround() {
			t.Flags |= b.Flag.Flag
		}
	case KindOptionalBorder:
		if !t.HasGround() {
			t.Flags |= mapgrid.OptionalBorder
		}
	case KindSpawn:
		if t.Spawn == nil {
			radius := 1
			if ctx != nil && ctx.SpawnRadius > 0 {
				radius = ctx.SpawnRadius
			}
			t.Spawn = &mapgrid.Spawn{Radius: radius}
		}
	case KindCreature:
		if t.HasGround() && !t.IsBlocking() {
			t.Creature = &mapgrid.Creature{Name: b.Creature.Creature, SpawnTime: b.Creature.SpawnTime}
		}
	case KindHouse:
		if t.HasGround() {
			t.HouseID = b.House.HouseID
			t.Flags |= mapgrid.ProtectionZone
		}
	case KindHouseExit:
		if m != nil && t.HasGround() && !t.IsBlocking() {
			m.SetHouseExit(b.House.HouseID, t.Position())
		}
	case KindWaypoint:
		if m != nil && t.HasGround() {
			m.SetWaypoint(b.Waypoint.Waypoint, t.Position())
		}
	}
}

// Undraw removes what b would have placed on t.
func (b *Brush) Undraw(m *mapgrid.Map, t *mapgrid.Tile, ctx *DrawContext) {
	if b == nil || t == nil {
		return
	}
	reg := ctx.registry()
	switch b.Kind {
	case KindGround:
		if reg == nil || reg.GroundOf(t) == b {
			t.Ground = nil
		}
	case KindEraser:
		erase(t, ctx != nil && ctx.Alt)
	case KindWall:
		w := b.Wall
		t.RemoveItems(func(it mapgrid.Item) bool {
			if !it.IsWall() {
				return false
			}
			_, ok := w.AlignmentOf(it.ID)
			return ok
		})
	case KindDoor:
		undrawDoor(t, ctx)
	case KindTable:
		tbl := b.Table.Table
		t.RemoveItems(func(it mapgrid.Item) bool {
			_, ok := tbl.SlotOf(it.ID)
			return it.IsTable() && ok
		})
	case KindCarpet:
		tbl := b.Carpet.Table
		t.RemoveItems(func(it mapgrid.Item) bool {
			_, ok := tbl.SlotOf(it.ID)
			return it.IsCarpet() && ok
		})
	case KindDoodad:
		d := b.Doodad
		t.RemoveItems(func(it mapgrid.Item) bool { return d.Owns(it.ID) })
	case KindRaw:
		id := b.Raw.ItemID
		t.RemoveItems(func(it mapgrid.Item) bool { return it.ID == id })
	case KindFlag:
		t.Flags &^= b.Flag.Flag
	case KindOptionalBorder:
		t.Flags &^= mapgrid.OptionalBorder
	case KindSpawn:
		t.Spawn = nil
	case KindCreature:
		t.Creature = nil
	case KindHouse:
		if t.HouseID == b.House.HouseID {
			t.HouseID = 0
			t.Flags &^= mapgrid.ProtectionZone
		}
	case KindHouseExit:
		if m == nil {
			return
		}
		if p, ok := m.HouseExit(b.House.HouseID); ok && p == t.Position() {
			m.RemoveHouseExit(b.House.HouseID)
		}
	case KindWaypoint:
		if m == nil {
			return
		}
		if p, ok := m.Waypoint(b.Waypoint.Waypoint); ok && p == t.Position() {
			m.RemoveWaypoint(b.Waypoint.Waypoint)
		}
	}
}

// erase strips stacked items and the creature, and the ground unless
// keepGround is set.
func erase(t *mapgrid.Tile, keepGround bool) {
	t.RemoveItems(func(mapgrid.Item) bool { return true })
	t.Creature = nil
	if !keepGround {
		t.Ground = nil
	}
}

// drawDoor swaps the wall item on t for a door of the same alignment.
func drawDoor(spec *DoorSpec, t *mapgrid.Tile, reg *Registry) {
	idx := t.FindItem(mapgrid.Item.IsWall)
	if idx < 0 {
		return
	}
	wb := reg.OfItem(t.Items[idx].ID)
	if wb == nil || wb.Kind != KindWall {
		return
	}
	align, ok := wb.Wall.AlignmentOf(t.Items[idx].ID)
	if !ok {
		return
	}
	d, ok := wb.Wall.FindDoor(align, spec.Type, spec.Open)
	if !ok {
		return
	}
	t.Items[idx] = mapgrid.Item{ID: d.ID, Flags: mapgrid.FlagWall | mapgrid.FlagDoor}
}

// undrawDoor turns a door back into the plain wall of its alignment.
func undrawDoor(t *mapgrid.Tile, ctx *DrawContext) {
	reg := ctx.registry()
	idx := t.FindItem(mapgrid.Item.IsDoor)
	if idx < 0 {
		return
	}
	wb := reg.OfItem(t.Items[idx].ID)
	if wb == nil || wb.Kind != KindWall {
		return
	}
	_, align, ok := wb.Wall.DoorOf(t.Items[idx].ID)
	if !ok {
		return
	}
	slot := wb.Wall.Table.Slots[align]
	if autoborder.Total(slot) == 0 {
		return
	}
	id := ctx.pickAny(slot)
	t.Items[idx] = mapgrid.Item{ID: id, Flags: mapgrid.FlagWall | mapgrid.FlagBlocking}
}
