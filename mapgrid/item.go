package mapgrid

// ItemFlags classify an item for the bordering passes.
type ItemFlags uint16

const (
	FlagGround ItemFlags = 1 << iota
	FlagGroundBorder
	FlagWall
	FlagDoor
	FlagTable
	FlagCarpet
	FlagBlocking
)

// Item is one thing placed on a tile.
type Item struct {
	ID      uint16
	Subtype uint16
	Flags   ItemFlags
}

func (i Item) Has(f ItemFlags) bool { return i.Flags&f != 0 }

// IsBorder reports whether the item was placed by ground bordering and may be
// stripped and regenerated freely.
func (i Item) IsBorder() bool { return i.Has(FlagGroundBorder) }

func (i Item) IsGroundBorder() bool { return i.Has(FlagGroundBorder) }
func (i Item) IsWall() bool         { return i.Has(FlagWall) }
func (i Item) IsDoor() bool         { return i.Has(FlagDoor) }
func (i Item) IsTable() bool        { return i.Has(FlagTable) }
func (i Item) IsCarpet() bool       { return i.Has(FlagCarpet) }
func (i Item) IsBlocking() bool     { return i.Has(FlagBlocking) }

// MapFlags are per-tile zone flags.
type MapFlags uint32

const (
	ProtectionZone MapFlags = 1 << iota
	NoPVP
	NoLogout
	PVPZone
	OptionalBorder
)

func (f MapFlags) Has(flag MapFlags) bool { return f&flag != 0 }

// Creature placed on a tile.
type Creature struct {
	Name      string
	SpawnTime int
}

// Spawn area centred on a tile.
type Spawn struct {
	Radius int
}
