package brush

import (
	"sync/atomic"

	"github.com/milk9111/tilebrush/autoborder"
)

// ID identifies a brush for the lifetime of the process.
type ID uint32

// FriendOfAll in a friend list or as a border target stands for every brush.
const FriendOfAll ID = ^ID(0)

var lastID atomic.Uint32

// NextID allocates a fresh brush id. Ids start at 1 and are never reused.
func NextID() ID {
	return ID(lastID.Add(1))
}

// Kind selects which payload of a Brush is populated.
type Kind uint8

const (
	KindGround Kind = iota
	KindWall
	KindDoor
	KindTable
	KindCarpet
	KindDoodad
	KindFlag
	KindSpawn
	KindCreature
	KindHouse
	KindHouseExit
	KindWaypoint
	KindOptionalBorder
	KindEraser
	KindRaw
)

var kindNames = [...]string{
	KindGround:         "ground",
	KindWall:           "wall",
	KindDoor:           "door",
	KindTable:          "table",
	KindCarpet:         "carpet",
	KindDoodad:         "doodad",
	KindFlag:           "flag",
	KindSpawn:          "spawn",
	KindCreature:       "creature",
	KindHouse:          "house",
	KindHouseExit:      "house_exit",
	KindWaypoint:       "waypoint",
	KindOptionalBorder: "optional_border",
	KindEraser:         "eraser",
	KindRaw:            "raw",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a material-file type name to a Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Brush is a tagged union: Kind says which one of the payload pointers is
// set. Everything else is nil.
type Brush struct {
	ID     ID
	Name   string
	LookID uint16
	Kind   Kind

	Ground   *GroundSpec
	Wall     *WallSpec
	Door     *DoorSpec
	Table    *TableSpec
	Carpet   *CarpetSpec
	Doodad   *DoodadSpec
	Raw      *RawSpec
	Flag     *FlagSpec
	Creature *CreatureSpec
	House    *HouseSpec
	Waypoint *WaypointSpec

	// Color is a display hint resolved from the material file.
	Color [3]uint8
}

func newBrush(name string, kind Kind) *Brush {
	return &Brush{ID: NextID(), Name: name, Kind: kind}
}

func NewGround(name string, spec GroundSpec) *Brush {
	b := newBrush(name, KindGround)
	b.Ground = &spec
	return b
}

func NewWall(name string, spec WallSpec) *Brush {
	b := newBrush(name, KindWall)
	if len(spec.Table.Slots) == 0 {
		spec.Table = autoborder.NewTable(autoborder.WallAlignmentCount, int(autoborder.WallPole))
	}
	b.Wall = &spec
	return b
}

func NewDoor(name string, spec DoorSpec) *Brush {
	b := newBrush(name, KindDoor)
	b.Door = &spec
	return b
}

func NewTable(name string, spec TableSpec) *Brush {
	b := newBrush(name, KindTable)
	if len(spec.Table.Slots) == 0 {
		spec.Table = autoborder.NewTable(autoborder.TableAlignmentCount, int(autoborder.TableAlone))
	}
	b.Table = &spec
	return b
}

func NewCarpet(name string, spec CarpetSpec) *Brush {
	b := newBrush(name, KindCarpet)
	if len(spec.Table.Slots) == 0 {
		spec.Table = autoborder.NewTable(autoborder.AlignmentCount, int(autoborder.Center))
	}
	b.Carpet = &spec
	return b
}

func NewDoodad(name string, spec DoodadSpec) *Brush {
	b := newBrush(name, KindDoodad)
	b.Doodad = &spec
	return b
}

func NewRaw(name string, spec RawSpec) *Brush {
	b := newBrush(name, KindRaw)
	b.Raw = &spec
	return b
}

func NewFlag(name string, spec FlagSpec) *Brush {
	b := newBrush(name, KindFlag)
	b.Flag = &spec
	return b
}

func NewCreature(name string, spec CreatureSpec) *Brush {
	b := newBrush(name, KindCreature)
	b.Creature = &spec
	return b
}

func NewHouse(name string, spec HouseSpec) *Brush {
	b := newBrush(name, KindHouse)
	b.House = &spec
	return b
}

func NewHouseExit(name string, spec HouseSpec) *Brush {
	b := newBrush(name, KindHouseExit)
	b.House = &spec
	return b
}

func NewWaypoint(name string, spec WaypointSpec) *Brush {
	b := newBrush(name, KindWaypoint)
	b.Waypoint = &spec
	return b
}

func NewSpawn(name string) *Brush          { return newBrush(name, KindSpawn) }
func NewOptionalBorder(name string) *Brush { return newBrush(name, KindOptionalBorder) }
func NewEraser(name string) *Brush         { return newBrush(name, KindEraser) }

// NeedsBorders reports whether drawing with the brush changes what its
// neighbours should look like.
func (b *Brush) NeedsBorders() bool {
	if b == nil {
		return false
	}
	switch b.Kind {
	case KindGround, KindEraser, KindWall, KindDoor, KindTable, KindCarpet, KindDoodad:
		return true
	case KindFlag, KindSpawn, KindCreature, KindHouse, KindHouseExit, KindWaypoint, KindOptionalBorder, KindRaw:
		return false
	}
	return false
}

// CanDrag reports whether the brush paints continuously while dragged.
func (b *Brush) CanDrag() bool {
	if b == nil {
		return false
	}
	switch b.Kind {
	case KindGround, KindEraser, KindWall, KindTable, KindCarpet, KindFlag, KindHouse, KindOptionalBorder, KindRaw:
		return true
	case KindDoodad:
		return b.Doodad.Draggable
	case KindDoor, KindSpawn, KindCreature, KindHouseExit, KindWaypoint:
		return false
	}
	return false
}

// OneSizeFitsAll reports whether the brush ignores the brush size and always
// paints a single tile.
func (b *Brush) OneSizeFitsAll() bool {
	if b == nil {
		return false
	}
	switch b.Kind {
	case KindDoor, KindSpawn, KindCreature, KindHouseExit, KindWaypoint:
		return true
	case KindDoodad:
		return b.Doodad.OneSize
	case KindGround, KindEraser, KindWall, KindTable, KindCarpet, KindFlag, KindHouse, KindOptionalBorder, KindRaw:
		return false
	}
	return false
}

// IsTerrain reports whether the brush carries a friend list.
func (b *Brush) IsTerrain() bool {
	if b == nil {
		return false
	}
	switch b.Kind {
	case KindGround, KindWall, KindTable, KindCarpet:
		return true
	}
	return false
}

// Friends returns the brush's friend list, or nil for non-terrain brushes.
func (b *Brush) Friends() *FriendList {
	if b == nil {
		return nil
	}
	switch b.Kind {
	case KindGround:
		return &b.Ground.Friends
	case KindWall:
		return &b.Wall.Friends
	case KindTable:
		return &b.Table.Friends
	case KindCarpet:
		return &b.Carpet.Friends
	}
	return nil
}

func (b *Brush) String() string {
	if b == nil {
		return "<none>"
	}
	return b.Name
}
