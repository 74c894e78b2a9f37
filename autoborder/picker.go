package autoborder

import "math/rand/v2"

// Weighted is one candidate item of a slot with its relative chance.
type Weighted struct {
	ItemID uint16
	Chance int
}

// Table holds one weighted candidate list per slot. Center names the slot
// tried first when the requested one yields nothing.
type Table struct {
	Slots  [][]Weighted
	Center int
}

// NewTable returns a table with n empty slots.
func NewTable(n, center int) Table {
	return Table{Slots: make([][]Weighted, n), Center: center}
}

// Add appends a candidate to a slot. Out-of-range slots are ignored.
func (t *Table) Add(slot int, w Weighted) {
	if slot < 0 || slot >= len(t.Slots) {
		return
	}
	t.Slots[slot] = append(t.Slots[slot], w)
}

// SlotOf returns the first slot listing itemID.
func (t Table) SlotOf(itemID uint16) (int, bool) {
	for i, slot := range t.Slots {
		for _, w := range slot {
			if w.ItemID == itemID {
				return i, true
			}
		}
	}
	return 0, false
}

// Items returns every item id the table can produce.
func (t Table) Items() []uint16 {
	var ids []uint16
	for _, slot := range t.Slots {
		for _, w := range slot {
			ids = append(ids, w.ItemID)
		}
	}
	return ids
}

// Total returns the summed positive chance of a slot.
func Total(slot []Weighted) int {
	total := 0
	for _, w := range slot {
		if w.Chance > 0 {
			total += w.Chance
		}
	}
	return total
}

// Source is the random source the picker draws from.
type Source interface {
	IntN(n int) int
}

// Picker resolves a slot of a Table to one concrete item id.
type Picker struct {
	src Source
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NewPicker returns a picker drawing from src, or from the process-wide
// generator when src is nil.
func NewPicker(src Source) *Picker {
	if src == nil {
		src = globalRand{}
	}
	return &Picker{src: src}
}

// Effective returns the slot Pick draws from for the requested one: the
// slot itself, the center slot, then the first slot in declaration order
// with a positive total.
func (t Table) Effective(slot int) (int, bool) {
	if slot < 0 || slot >= len(t.Slots) {
		return 0, false
	}
	if Total(t.Slots[slot]) > 0 {
		return slot, true
	}
	if slot != t.Center && t.Center >= 0 && t.Center < len(t.Slots) && Total(t.Slots[t.Center]) > 0 {
		return t.Center, true
	}
	for i, s := range t.Slots {
		if Total(s) > 0 {
			return i, true
		}
	}
	return 0, false
}

// InSlot reports whether itemID is a positive-chance candidate of slot.
func (t Table) InSlot(slot int, itemID uint16) bool {
	if slot < 0 || slot >= len(t.Slots) {
		return false
	}
	for _, w := range t.Slots[slot] {
		if w.ItemID == itemID && w.Chance > 0 {
			return true
		}
	}
	return false
}

// Pick returns an item for the requested slot, falling back to the center
// slot and then to the first slot that yields anything. Zero means no item.
func (p *Picker) Pick(t Table, slot int) uint16 {
	eff, ok := t.Effective(slot)
	if !ok {
		return 0
	}
	return p.pickSlot(t.Slots[eff])
}

func (p *Picker) pickSlot(slot []Weighted) uint16 {
	total := Total(slot)
	if total <= 0 {
		return 0
	}
	roll := p.src.IntN(total) + 1
	for _, w := range slot {
		if w.Chance <= 0 {
			continue
		}
		if roll <= w.Chance {
			return w.ItemID
		}
		roll -= w.Chance
	}
	return 0
}
