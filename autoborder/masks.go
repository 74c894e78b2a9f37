package autoborder

// Lookup tables, built once at init from the classification rules below.
var (
	carpetTypes [256]Alignment
	groundTypes [256]borderSet
	wallTypes   [16]WallAlignment
	tableTypes  [16]TableAlignment
)

// borderSet holds up to four ground border alignments for one mask.
type borderSet struct {
	n     uint8
	slots [4]Alignment
}

func (b *borderSet) add(a Alignment) {
	b.slots[b.n] = a
	b.n++
}

func init() {
	for m := 0; m < 256; m++ {
		carpetTypes[m] = classifyCarpet(uint8(m))
		groundTypes[m] = decomposeGround(uint8(m))
	}
	initWallTypes()
	initTableTypes()
}

// ClassifyCarpet maps an 8-way same-carpet mask to the carpet slot to use.
func ClassifyCarpet(mask uint8) Alignment {
	return carpetTypes[mask]
}

// ClassifyTable maps a 4-way same-table mask to the table slot to use.
func ClassifyTable(mask uint8) TableAlignment {
	return tableTypes[mask&0x0f]
}

// ClassifyWall maps a 4-way same-wall mask to the wall slot to use.
func ClassifyWall(mask uint8) WallAlignment {
	return wallTypes[mask&0x0f]
}

// GroundBorders returns the border slots a tile needs for an 8-way mask of
// neighbours belonging to one bordering brush. The slice is shared; callers
// must not modify it.
func GroundBorders(mask uint8) []Alignment {
	b := &groundTypes[mask]
	return b.slots[:b.n]
}

// Sides reduces an 8-way mask to its 4-way orthogonal part.
func Sides(mask uint8) uint8 {
	var out uint8
	if mask&N != 0 {
		out |= Side4N
	}
	if mask&E != 0 {
		out |= Side4E
	}
	if mask&S != 0 {
		out |= Side4S
	}
	if mask&W != 0 {
		out |= Side4W
	}
	return out
}

// single-side carpet refinements: default, then the corner chosen for a
// present NW, NE, SW, SE neighbour (checked in that order).
var carpetSingleSide = [4][5]Alignment{
	{NorthHorizontal, NorthwestCorner, NortheastCorner, NorthwestCorner, NortheastCorner},
	{EastHorizontal, NortheastCorner, NortheastCorner, SoutheastCorner, SoutheastCorner},
	{SouthwestCorner, NorthwestCorner, NortheastCorner, SouthwestCorner, SoutheastCorner},
	{WestHorizontal, WestHorizontal, NorthwestCorner, SouthwestCorner, SouthwestCorner},
}

// classifyCarpet checks neighbour groups in a fixed priority order and stops
// at the first match. Rendered maps depend on this order.
func classifyCarpet(mask uint8) Alignment {
	n, e, s, w := mask&N != 0, mask&E != 0, mask&S != 0, mask&W != 0
	nw, ne, sw, se := mask&NW != 0, mask&NE != 0, mask&SW != 0, mask&SE != 0

	switch {
	case n && e && s && w:
		missing := 0
		gap := Center
		if !nw {
			missing++
			gap = NorthwestDiagonal
		}
		if !ne {
			missing++
			gap = NortheastDiagonal
		}
		if !se {
			missing++
			gap = SoutheastDiagonal
		}
		if !sw {
			missing++
			gap = SouthwestDiagonal
		}
		if missing == 1 {
			return gap
		}
		return Center

	case n && e && w:
		return junction(NorthHorizontal, nw, ne, NorthwestCorner, NortheastCorner)
	case n && e && s:
		return junction(EastHorizontal, ne, se, NortheastCorner, SoutheastCorner)
	case e && s && w:
		return junction(SouthHorizontal, sw, se, SouthwestCorner, SoutheastCorner)
	case n && s && w:
		return junction(WestHorizontal, nw, sw, NorthwestCorner, SouthwestCorner)

	case n && w:
		return NorthwestCorner
	case n && e:
		return NortheastCorner
	case s && e:
		return SoutheastCorner
	case s && w:
		return SouthwestCorner

	case n && s:
		north, south := nw || ne, sw || se
		if north && !south {
			return pick2(nw, NorthwestCorner, NortheastCorner)
		}
		if south && !north {
			return pick2(sw, SouthwestCorner, SoutheastCorner)
		}
		return WestHorizontal
	case e && w:
		west, east := nw || sw, ne || se
		if west && !east {
			return pick2(nw, NorthwestCorner, SouthwestCorner)
		}
		if east && !west {
			return pick2(ne, NortheastCorner, SoutheastCorner)
		}
		return NorthHorizontal

	case n:
		return singleSide(0, nw, ne, sw, se)
	case e:
		return singleSide(1, nw, ne, sw, se)
	case s:
		return singleSide(2, nw, ne, sw, se)
	case w:
		return singleSide(3, nw, ne, sw, se)
	}

	count := 0
	corner := Center
	for _, d := range [...]struct {
		set bool
		a   Alignment
	}{{nw, NorthwestCorner}, {ne, NortheastCorner}, {sw, SouthwestCorner}, {se, SoutheastCorner}} {
		if d.set {
			count++
			corner = d.a
		}
	}
	if count == 1 {
		return corner
	}
	return Center
}

// junction resolves a three-sided carpet: a straight edge unless exactly one
// of the two diagonals flanking the edge is present.
func junction(edge Alignment, left, right bool, leftCorner, rightCorner Alignment) Alignment {
	switch {
	case left && !right:
		return leftCorner
	case right && !left:
		return rightCorner
	}
	return edge
}

func pick2(first bool, a, b Alignment) Alignment {
	if first {
		return a
	}
	return b
}

func singleSide(side int, nw, ne, sw, se bool) Alignment {
	row := carpetSingleSide[side]
	switch {
	case nw:
		return row[1]
	case ne:
		return row[2]
	case sw:
		return row[3]
	case se:
		return row[4]
	}
	return row[0]
}

// decomposeGround turns a discontinuity mask into border slots: inner
// diagonals for adjacent orthogonal pairs, edges for orthogonals not used by
// a diagonal, and outer corners for diagonals with both flanks clear.
func decomposeGround(mask uint8) borderSet {
	var b borderSet
	n, e, s, w := mask&N != 0, mask&E != 0, mask&S != 0, mask&W != 0
	used := [4]bool{}

	pairs := [...]struct {
		a, b   bool
		ia, ib int
		slot   Alignment
	}{
		{n, w, 0, 3, NorthwestDiagonal},
		{n, e, 0, 1, NortheastDiagonal},
		{s, e, 2, 1, SoutheastDiagonal},
		{s, w, 2, 3, SouthwestDiagonal},
	}
	for _, p := range pairs {
		if p.a && p.b && b.n < 4 {
			b.add(p.slot)
			used[p.ia] = true
			used[p.ib] = true
		}
	}

	edges := [...]struct {
		set  bool
		slot Alignment
	}{{n, NorthHorizontal}, {e, EastHorizontal}, {s, SouthHorizontal}, {w, WestHorizontal}}
	for i, ed := range edges {
		if ed.set && !used[i] && b.n < 4 {
			b.add(ed.slot)
		}
	}

	corners := [...]struct {
		set            bool
		flankA, flankB bool
		slot           Alignment
	}{
		{mask&NW != 0, n, w, NorthwestCorner},
		{mask&NE != 0, n, e, NortheastCorner},
		{mask&SE != 0, s, e, SoutheastCorner},
		{mask&SW != 0, s, w, SouthwestCorner},
	}
	for _, c := range corners {
		if c.set && !c.flankA && !c.flankB && b.n < 4 {
			b.add(c.slot)
		}
	}
	return b
}

func initWallTypes() {
	for i := range wallTypes {
		wallTypes[i] = WallPole
	}
	wallTypes[Side4N] = WallSouthEnd
	wallTypes[Side4S] = WallNorthEnd
	wallTypes[Side4E] = WallWestEnd
	wallTypes[Side4W] = WallEastEnd
	wallTypes[Side4N|Side4S] = WallVertical
	wallTypes[Side4E|Side4W] = WallHorizontal
	wallTypes[Side4N|Side4W] = WallNorthwestCorner
	wallTypes[Side4N|Side4E] = WallNortheastCorner
	wallTypes[Side4S|Side4W] = WallSouthwestCorner
	wallTypes[Side4S|Side4E] = WallSoutheastCorner
	wallTypes[Side4E|Side4W|Side4N] = WallSouthT
	wallTypes[Side4N|Side4S|Side4W] = WallEastT
	wallTypes[Side4N|Side4S|Side4E] = WallWestT
	wallTypes[Side4E|Side4W|Side4S] = WallNorthT
	wallTypes[Side4N|Side4E|Side4S|Side4W] = WallIntersection
}

func initTableTypes() {
	for i := range tableTypes {
		tableTypes[i] = TableAlone
	}
	tableTypes[Side4N] = TableSouthEnd
	tableTypes[Side4S] = TableNorthEnd
	tableTypes[Side4E] = TableWestEnd
	tableTypes[Side4W] = TableEastEnd
	tableTypes[Side4N|Side4S] = TableVertical
	tableTypes[Side4E|Side4W] = TableHorizontal
}
