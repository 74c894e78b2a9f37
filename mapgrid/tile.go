package mapgrid

// Tile is one cell of the map. A tile exclusively owns its ground and items.
type Tile struct {
	pos      Position
	Ground   *Item
	Items    []Item
	Creature *Creature
	Spawn    *Spawn
	Flags    MapFlags
	HouseID  uint32
}

// NewTile returns an empty tile at pos that is not yet part of any map.
func NewTile(pos Position) *Tile {
	return &Tile{pos: pos}
}

func (t *Tile) Position() Position { return t.pos }

// DeepCopy returns an independent clone of the tile.
func (t *Tile) DeepCopy() *Tile {
	if t == nil {
		return nil
	}
	c := &Tile{
		pos:     t.pos,
		Flags:   t.Flags,
		HouseID: t.HouseID,
	}
	if t.Ground != nil {
		g := *t.Ground
		c.Ground = &g
	}
	if t.Items != nil {
		c.Items = make([]Item, len(t.Items))
		copy(c.Items, t.Items)
	}
	if t.Creature != nil {
		cr := *t.Creature
		c.Creature = &cr
	}
	if t.Spawn != nil {
		sp := *t.Spawn
		c.Spawn = &sp
	}
	return c
}

// Empty reports whether the tile holds no content worth keeping.
func (t *Tile) Empty() bool {
	if t == nil {
		return true
	}
	return t.Ground == nil && len(t.Items) == 0 && t.Creature == nil && t.Spawn == nil && t.HouseID == 0 && t.Flags == 0
}

func (t *Tile) HasGround() bool { return t != nil && t.Ground != nil }

// AddItem places it on the tile. Ground items replace the ground, ground
// borders join the border run at the bottom of the stack, anything else goes
// on top.
func (t *Tile) AddItem(it Item) {
	if it.Has(FlagGround) {
		g := it
		t.Ground = &g
		return
	}
	if it.IsGroundBorder() {
		at := 0
		for at < len(t.Items) && t.Items[at].IsGroundBorder() {
			at++
		}
		t.insertAt(at, it)
		return
	}
	t.Items = append(t.Items, it)
}

func (t *Tile) insertAt(at int, items ...Item) {
	t.Items = append(t.Items, items...)
	copy(t.Items[at+len(items):], t.Items[at:len(t.Items)-len(items)])
	copy(t.Items[at:], items)
}

// InsertBorders puts ground-border items at the bottom of the stack, ahead of
// any border run already there, keeping their relative order.
func (t *Tile) InsertBorders(items []Item) {
	if len(items) == 0 {
		return
	}
	t.insertAt(0, items...)
}

// RemoveItems drops every stacked item matching pred and reports how many
// were removed. Order of the survivors is preserved.
func (t *Tile) RemoveItems(pred func(Item) bool) int {
	kept := t.Items[:0]
	removed := 0
	for _, it := range t.Items {
		if pred(it) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	for i := len(kept); i < len(t.Items); i++ {
		t.Items[i] = Item{}
	}
	t.Items = kept
	return removed
}

// FindItem returns the index of the first stacked item matching pred, or -1.
func (t *Tile) FindItem(pred func(Item) bool) int {
	for i, it := range t.Items {
		if pred(it) {
			return i
		}
	}
	return -1
}

// Wall returns the first wall item on the tile.
func (t *Tile) Wall() (Item, bool) { return t.first(Item.IsWall) }

// Table returns the first table item on the tile.
func (t *Tile) Table() (Item, bool) { return t.first(Item.IsTable) }

// Carpet returns the first carpet item on the tile.
func (t *Tile) Carpet() (Item, bool) { return t.first(Item.IsCarpet) }

func (t *Tile) first(pred func(Item) bool) (Item, bool) {
	if t == nil {
		return Item{}, false
	}
	if idx := t.FindItem(pred); idx >= 0 {
		return t.Items[idx], true
	}
	return Item{}, false
}

// IsBlocking reports whether anything on the tile blocks placement.
func (t *Tile) IsBlocking() bool {
	if t == nil {
		return false
	}
	if t.Ground != nil && t.Ground.IsBlocking() {
		return true
	}
	return t.FindItem(Item.IsBlocking) >= 0
}

// SameContent compares ground and stacked items by id and subtype.
func (t *Tile) SameContent(o *Tile) bool {
	if t == nil || o == nil {
		return t.Empty() && o.Empty()
	}
	if (t.Ground == nil) != (o.Ground == nil) {
		return false
	}
	if t.Ground != nil && (t.Ground.ID != o.Ground.ID || t.Ground.Subtype != o.Ground.Subtype) {
		return false
	}
	if len(t.Items) != len(o.Items) {
		return false
	}
	for i := range t.Items {
		if t.Items[i].ID != o.Items[i].ID || t.Items[i].Subtype != o.Items[i].Subtype {
			return false
		}
	}
	return true
}
