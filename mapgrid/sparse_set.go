package mapgrid

// sparseSet is a cache-friendly tile store for one chunk, keyed by the
// 1-based local cell id.
type sparseSet struct {
	denseIDs   []int
	denseTiles []*Tile
	sparse     []int
}

// Has returns true if the cell id holds a tile.
func (s *sparseSet) Has(id int) bool {
	if s == nil || id <= 0 || id-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseIDs) && s.denseIDs[idx] == id
}

// Get returns the tile for id, or nil.
func (s *sparseSet) Get(id int) *Tile {
	if !s.Has(id) {
		return nil
	}
	return s.denseTiles[s.sparse[id-1]]
}

// Set inserts or replaces the tile for id.
func (s *sparseSet) Set(id int, t *Tile) {
	if s == nil || id <= 0 {
		return
	}
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.Has(id) {
		s.denseTiles[s.sparse[id-1]] = t
		return
	}
	s.denseIDs = append(s.denseIDs, id)
	s.denseTiles = append(s.denseTiles, t)
	s.sparse[id-1] = len(s.denseIDs) - 1
}

// Remove deletes the tile for id if present and returns it.
func (s *sparseSet) Remove(id int) *Tile {
	if s == nil || !s.Has(id) {
		return nil
	}
	idx := s.sparse[id-1]
	removed := s.denseTiles[idx]
	last := len(s.denseIDs) - 1
	lastID := s.denseIDs[last]

	s.denseIDs[idx] = s.denseIDs[last]
	s.denseTiles[idx] = s.denseTiles[last]
	s.sparse[lastID-1] = idx

	s.denseTiles[last] = nil
	s.denseIDs = s.denseIDs[:last]
	s.denseTiles = s.denseTiles[:last]
	s.sparse[id-1] = -1
	return removed
}

// Len returns the number of stored tiles.
func (s *sparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseIDs)
}

// Tiles returns the dense tile list.
func (s *sparseSet) Tiles() []*Tile {
	if s == nil {
		return nil
	}
	return s.denseTiles
}
