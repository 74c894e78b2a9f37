package mapgrid

import "sort"

const (
	chunkShift = 5
	chunkSize  = 1 << chunkShift
	chunkMask  = chunkSize - 1
)

type chunkKey struct {
	cx, cy, z int
}

// Location is a handle to a tile slot created on a map. The slot exists
// whether or not a tile has been materialised there.
type Location struct {
	pos Position
}

func (l *Location) Position() Position { return l.pos }

// Map owns the tiles of one world, stored sparsely in fixed-size chunks.
type Map struct {
	width     int
	height    int
	chunks    map[chunkKey]*sparseSet
	count     int
	houseExit map[uint32]Position
	waypoints map[string]Position
}

// New returns an empty map of the given bounds.
func New(width, height int) *Map {
	return &Map{
		width:     width,
		height:    height,
		chunks:    make(map[chunkKey]*sparseSet),
		houseExit: make(map[uint32]Position),
		waypoints: make(map[string]Position),
	}
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

// Len returns the number of materialised tiles.
func (m *Map) Len() int { return m.count }

// InBounds reports whether p addresses a valid cell.
func (m *Map) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.width && p.Y < m.height && p.Z >= 0 && p.Z <= MaxFloor
}

func split(p Position) (chunkKey, int) {
	key := chunkKey{cx: p.X >> chunkShift, cy: p.Y >> chunkShift, z: p.Z}
	return key, 1 + (p.X & chunkMask) + (p.Y&chunkMask)*chunkSize
}

// Tile returns the tile at p, or nil.
func (m *Map) Tile(p Position) *Tile {
	if !m.InBounds(p) {
		return nil
	}
	key, id := split(p)
	return m.chunks[key].Get(id)
}

// TileAt is Tile for separate coordinates.
func (m *Map) TileAt(x, y, z int) *Tile {
	return m.Tile(Position{X: x, Y: y, Z: z})
}

// CreateLocation returns a handle for p. Nil when p is out of bounds.
func (m *Map) CreateLocation(p Position) *Location {
	if !m.InBounds(p) {
		return nil
	}
	key, _ := split(p)
	if _, ok := m.chunks[key]; !ok {
		m.chunks[key] = &sparseSet{}
	}
	return &Location{pos: p}
}

// Allocate materialises an empty tile for loc. The tile is detached until
// passed to SetTile.
func (m *Map) Allocate(loc *Location) *Tile {
	if loc == nil {
		return nil
	}
	return NewTile(loc.pos)
}

// SetTile stores t at its position. An existing tile is only replaced when
// replace is true. Reports whether t was stored.
func (m *Map) SetTile(t *Tile, replace bool) bool {
	if t == nil || !m.InBounds(t.pos) {
		return false
	}
	key, id := split(t.pos)
	set, ok := m.chunks[key]
	if !ok {
		set = &sparseSet{}
		m.chunks[key] = set
	}
	if set.Has(id) {
		if !replace {
			return false
		}
		set.Set(id, t)
		return true
	}
	set.Set(id, t)
	m.count++
	return true
}

// RemoveTile deletes the tile at p and returns it.
func (m *Map) RemoveTile(p Position) *Tile {
	if !m.InBounds(p) {
		return nil
	}
	key, id := split(p)
	set, ok := m.chunks[key]
	if !ok {
		return nil
	}
	t := set.Remove(id)
	if t != nil {
		m.count--
	}
	if set.Len() == 0 {
		delete(m.chunks, key)
	}
	return t
}

// Clear drops every tile, house exit and waypoint.
func (m *Map) Clear() {
	m.chunks = make(map[chunkKey]*sparseSet)
	m.houseExit = make(map[uint32]Position)
	m.waypoints = make(map[string]Position)
	m.count = 0
}

// Each calls fn for every tile in no particular order. fn must not add or
// remove tiles.
func (m *Map) Each(fn func(*Tile)) {
	for _, set := range m.chunks {
		for _, t := range set.Tiles() {
			fn(t)
		}
	}
}

// SetHouseExit records the exit position of a house.
func (m *Map) SetHouseExit(house uint32, p Position) {
	m.houseExit[house] = p
}

// HouseExit returns the recorded exit of a house.
func (m *Map) HouseExit(house uint32) (Position, bool) {
	p, ok := m.houseExit[house]
	return p, ok
}

// SetWaypoint places a named waypoint, moving it if it already exists.
func (m *Map) SetWaypoint(name string, p Position) {
	m.waypoints[name] = p
}

// Waypoint returns the position of a named waypoint.
func (m *Map) Waypoint(name string) (Position, bool) {
	p, ok := m.waypoints[name]
	return p, ok
}

// RemoveWaypointsAt deletes every waypoint placed on p.
func (m *Map) RemoveWaypointsAt(p Position) int {
	n := 0
	for name, wp := range m.waypoints {
		if wp == p {
			delete(m.waypoints, name)
			n++
		}
	}
	return n
}

// RemoveWaypoint deletes a named waypoint.
func (m *Map) RemoveWaypoint(name string) bool {
	if _, ok := m.waypoints[name]; !ok {
		return false
	}
	delete(m.waypoints, name)
	return true
}

// WaypointsAt returns the names of the waypoints placed on p, sorted.
func (m *Map) WaypointsAt(p Position) []string {
	var names []string
	for name, wp := range m.waypoints {
		if wp == p {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// RemoveHouseExit forgets the exit of a house.
func (m *Map) RemoveHouseExit(house uint32) {
	delete(m.houseExit, house)
}
