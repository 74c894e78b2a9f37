package brush

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilebrush/mapgrid"
)

var ErrDuplicateName = errors.New("brush: duplicate name")

// Registry looks brushes up by name, id and by the items they place.
type Registry struct {
	order  []*Brush
	byName map[string]*Brush
	byID   map[ID]*Brush
	byItem map[uint16]*Brush
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Brush),
		byID:   make(map[ID]*Brush),
		byItem: make(map[uint16]*Brush),
	}
}

// Add registers b under its name. Names are case-sensitive.
func (r *Registry) Add(b *Brush) error {
	if b == nil {
		return nil
	}
	if _, ok := r.byName[b.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
	}
	r.order = append(r.order, b)
	r.byName[b.Name] = b
	r.byID[b.ID] = b
	for _, id := range b.items() {
		if _, ok := r.byItem[id]; !ok {
			r.byItem[id] = b
		}
	}
	return nil
}

// Get returns the brush registered as name, or nil.
func (r *Registry) Get(name string) *Brush {
	if r == nil {
		return nil
	}
	return r.byName[name]
}

func (r *Registry) ByID(id ID) *Brush {
	if r == nil {
		return nil
	}
	return r.byID[id]
}

// OfItem returns the brush that places itemID, or nil.
func (r *Registry) OfItem(itemID uint16) *Brush {
	if r == nil {
		return nil
	}
	return r.byItem[itemID]
}

// GroundOf returns the ground brush of the tile's ground item, or nil.
func (r *Registry) GroundOf(t *mapgrid.Tile) *Brush {
	if t == nil || t.Ground == nil {
		return nil
	}
	b := r.OfItem(t.Ground.ID)
	if b == nil || b.Kind != KindGround {
		return nil
	}
	return b
}

// All returns the brushes in registration order.
func (r *Registry) All() []*Brush {
	if r == nil {
		return nil
	}
	return r.order
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// MakeItem builds an item carrying the flags implied by the brush that
// places it.
func (r *Registry) MakeItem(itemID uint16) mapgrid.Item {
	it := mapgrid.Item{ID: itemID}
	b := r.OfItem(itemID)
	if b == nil {
		return it
	}
	switch b.Kind {
	case KindGround:
		it.Flags = mapgrid.FlagGround
	case KindWall:
		it.Flags = mapgrid.FlagWall | mapgrid.FlagBlocking
		if _, _, ok := b.Wall.DoorOf(itemID); ok {
			it.Flags = mapgrid.FlagWall | mapgrid.FlagDoor
		}
	case KindTable:
		it.Flags = mapgrid.FlagTable | mapgrid.FlagBlocking
	case KindCarpet:
		it.Flags = mapgrid.FlagCarpet
	case KindDoodad:
		if b.Doodad.Blocking {
			it.Flags = mapgrid.FlagBlocking
		}
	case KindRaw:
		it.Flags = b.Raw.Flags
	}
	return it
}

// items lists every item id the brush can place.
func (b *Brush) items() []uint16 {
	var ids []uint16
	switch b.Kind {
	case KindGround:
		for _, w := range b.Ground.Items {
			ids = append(ids, w.ItemID)
		}
	case KindWall:
		ids = append(ids, b.Wall.Table.Items()...)
		for _, doors := range b.Wall.Doors {
			for _, d := range doors {
				ids = append(ids, d.ID)
			}
		}
	case KindTable:
		ids = b.Table.Table.Items()
	case KindCarpet:
		ids = b.Carpet.Table.Items()
	case KindDoodad:
		for _, w := range b.Doodad.Items {
			ids = append(ids, w.ItemID)
		}
		for _, c := range b.Doodad.Composites {
			for _, t := range c.Tiles {
				ids = append(ids, t.Items...)
			}
		}
	case KindRaw:
		ids = append(ids, b.Raw.ItemID)
	}
	return ids
}
