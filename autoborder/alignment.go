package autoborder

// Neighbour bits of an 8-way occupancy mask.
const (
	N uint8 = 1 << iota
	NE
	E
	SE
	S
	SW
	W
	NW
)

// Neighbour bits of a 4-way occupancy mask (walls and tables).
const (
	Side4N uint8 = 1 << iota
	Side4E
	Side4S
	Side4W
)

// Alignment is a slot of a ground border or carpet table.
type Alignment uint8

const (
	Center Alignment = iota
	NorthHorizontal
	EastHorizontal
	SouthHorizontal
	WestHorizontal
	NorthwestCorner
	NortheastCorner
	SouthwestCorner
	SoutheastCorner
	NorthwestDiagonal
	NortheastDiagonal
	SoutheastDiagonal
	SouthwestDiagonal

	AlignmentCount = int(SouthwestDiagonal) + 1
)

var alignmentNames = [AlignmentCount]string{
	"center", "n", "e", "s", "w", "cnw", "cne", "csw", "cse", "dnw", "dne", "dse", "dsw",
}

func (a Alignment) String() string {
	if int(a) < AlignmentCount {
		return alignmentNames[a]
	}
	return "unknown"
}

// ParseAlignment maps a material-file slot name to an Alignment.
func ParseAlignment(name string) (Alignment, bool) {
	for i, n := range alignmentNames {
		if n == name {
			return Alignment(i), true
		}
	}
	return 0, false
}

// WallAlignment is a slot of a wall brush.
type WallAlignment uint8

const (
	WallPole WallAlignment = iota
	WallVertical
	WallHorizontal
	WallNorthEnd
	WallEastEnd
	WallSouthEnd
	WallWestEnd
	WallNorthwestCorner
	WallNortheastCorner
	WallSouthwestCorner
	WallSoutheastCorner
	WallNorthT
	WallEastT
	WallSouthT
	WallWestT
	WallIntersection

	WallAlignmentCount = int(WallIntersection) + 1
)

var wallNames = [WallAlignmentCount]string{
	"pole", "vertical", "horizontal",
	"north_end", "east_end", "south_end", "west_end",
	"northwest_corner", "northeast_corner", "southwest_corner", "southeast_corner",
	"north_t", "east_t", "south_t", "west_t", "intersection",
}

func (a WallAlignment) String() string {
	if int(a) < WallAlignmentCount {
		return wallNames[a]
	}
	return "unknown"
}

// IsCorner reports whether the alignment joins two perpendicular segments.
func (a WallAlignment) IsCorner() bool {
	return a >= WallNorthwestCorner && a <= WallSoutheastCorner
}

func ParseWallAlignment(name string) (WallAlignment, bool) {
	for i, n := range wallNames {
		if n == name {
			return WallAlignment(i), true
		}
	}
	return 0, false
}

// TableAlignment is a slot of a table brush.
type TableAlignment uint8

const (
	TableAlone TableAlignment = iota
	TableVertical
	TableHorizontal
	TableNorthEnd
	TableEastEnd
	TableSouthEnd
	TableWestEnd

	TableAlignmentCount = int(TableWestEnd) + 1
)

var tableNames = [TableAlignmentCount]string{
	"alone", "vertical", "horizontal", "north_end", "east_end", "south_end", "west_end",
}

func (a TableAlignment) String() string {
	if int(a) < TableAlignmentCount {
		return tableNames[a]
	}
	return "unknown"
}

func ParseTableAlignment(name string) (TableAlignment, bool) {
	for i, n := range tableNames {
		if n == name {
			return TableAlignment(i), true
		}
	}
	return 0, false
}
