package brush

import (
	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/mapgrid"
)

// GroundBorder names the border set a ground brush draws onto tiles of
// another brush. To is 0 for groundless tiles and FriendOfAll for any brush.
type GroundBorder struct {
	To       ID
	BorderID int
}

type GroundSpec struct {
	// ZOrder decides which of two touching grounds draws the border: the
	// higher one draws onto the lower.
	ZOrder  int
	Items   []autoborder.Weighted
	Friends FriendList
	Borders []GroundBorder
	// OptionalBorder is the border set drawn onto groundless tiles flagged
	// for optional bordering. Zero disables it.
	OptionalBorder int
}

// BorderToward returns the border set this ground draws onto tiles of the
// brush to. An exact target wins over FriendOfAll.
func (g *GroundSpec) BorderToward(to ID) (int, bool) {
	if g == nil {
		return 0, false
	}
	for _, b := range g.Borders {
		if b.To == to {
			return b.BorderID, true
		}
	}
	if to == 0 {
		return 0, false
	}
	for _, b := range g.Borders {
		if b.To == FriendOfAll {
			return b.BorderID, true
		}
	}
	return 0, false
}

// DoorType tells doors of one wall apart.
type DoorType uint8

const (
	DoorNormal DoorType = iota
	DoorLocked
	DoorQuest
	DoorMagic
	DoorArchway
	DoorWindow
)

var doorTypeNames = [...]string{"normal", "locked", "quest", "magic", "archway", "window"}

func (d DoorType) String() string {
	if int(d) < len(doorTypeNames) {
		return doorTypeNames[d]
	}
	return "unknown"
}

func ParseDoorType(name string) (DoorType, bool) {
	for i, n := range doorTypeNames {
		if n == name {
			return DoorType(i), true
		}
	}
	return 0, false
}

type DoorItem struct {
	ID   uint16
	Type DoorType
	Open bool
}

// WallSpec holds one weighted slot per WallAlignment plus the doors that fit
// each alignment.
type WallSpec struct {
	Friends FriendList
	Table   autoborder.Table
	Doors   [autoborder.WallAlignmentCount][]DoorItem
}

// DoorOf finds a door item of this wall and the alignment it belongs to.
func (w *WallSpec) DoorOf(itemID uint16) (DoorItem, autoborder.WallAlignment, bool) {
	for a, doors := range w.Doors {
		for _, d := range doors {
			if d.ID == itemID {
				return d, autoborder.WallAlignment(a), true
			}
		}
	}
	return DoorItem{}, 0, false
}

// FindDoor returns a door for the alignment, preferring one that matches
// both type and open state, then type alone.
func (w *WallSpec) FindDoor(a autoborder.WallAlignment, typ DoorType, open bool) (DoorItem, bool) {
	if int(a) >= len(w.Doors) {
		return DoorItem{}, false
	}
	var fallback *DoorItem
	for i, d := range w.Doors[a] {
		if d.Type != typ {
			continue
		}
		if d.Open == open {
			return d, true
		}
		if fallback == nil {
			fallback = &w.Doors[a][i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return DoorItem{}, false
}

// AlignmentOf returns the alignment a wall or door item is placed at.
func (w *WallSpec) AlignmentOf(itemID uint16) (autoborder.WallAlignment, bool) {
	if slot, ok := w.Table.SlotOf(itemID); ok {
		return autoborder.WallAlignment(slot), true
	}
	if _, a, ok := w.DoorOf(itemID); ok {
		return a, true
	}
	return 0, false
}

// DoorSpec turns the wall under it into a door of Type.
type DoorSpec struct {
	Type DoorType
	Open bool
}

type TableSpec struct {
	Friends FriendList
	Table   autoborder.Table
}

type CarpetSpec struct {
	Friends FriendList
	Table   autoborder.Table
}

type CompositeTile struct {
	DX, DY, DZ int
	Items      []uint16
}

// Composite is a multi-tile doodad placed as one unit.
type Composite struct {
	Chance int
	Tiles  []CompositeTile
}

type DoodadSpec struct {
	Items      []autoborder.Weighted
	Composites []Composite
	// OnBlocking allows placement on tiles holding blocking content.
	OnBlocking bool
	// OnDuplicate allows placing onto a tile already holding this doodad.
	OnDuplicate bool
	OneSize     bool
	Draggable   bool
	Blocking    bool
}

// Owns reports whether itemID is one of the doodad's items.
func (d *DoodadSpec) Owns(itemID uint16) bool {
	for _, w := range d.Items {
		if w.ItemID == itemID {
			return true
		}
	}
	for _, c := range d.Composites {
		for _, t := range c.Tiles {
			for _, id := range t.Items {
				if id == itemID {
					return true
				}
			}
		}
	}
	return false
}

type RawSpec struct {
	ItemID uint16
	Flags  mapgrid.ItemFlags
}

type FlagSpec struct {
	Flag mapgrid.MapFlags
}

type CreatureSpec struct {
	Creature  string
	SpawnTime int
}

type HouseSpec struct {
	HouseID uint32
}

type WaypointSpec struct {
	Waypoint string
}
