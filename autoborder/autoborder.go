package autoborder

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

var ErrDuplicateBorder = errors.New("autoborder: duplicate border id")

// AutoBorder is a weighted item table per ground/carpet alignment, keyed by
// its border-set id.
type AutoBorder struct {
	ID    int
	Group int
	Table Table
}

func New(id int) *AutoBorder {
	return &AutoBorder{ID: id, Table: NewTable(AlignmentCount, int(Center))}
}

// Warnings collects human-readable configuration problems.
type Warnings []string

func (w *Warnings) Addf(format string, args ...any) {
	if w == nil {
		return
	}
	*w = append(*w, fmt.Sprintf(format, args...))
}

// Unserialize fills b from a mapping node:
//
//	id: 12
//	group: 1
//	items:
//	  n: 4526
//	  cnw: [{id: 4530, chance: 10}, 4531]
//
// Malformed entries are reported to warnings and skipped. It returns false
// only when the border cannot be used at all.
func (b *AutoBorder) Unserialize(node *yaml.Node, warnings *Warnings) bool {
	if node == nil || node.Kind != yaml.MappingNode {
		warnings.Addf("line %d: border must be a mapping", lineOf(node))
		return false
	}
	hasID := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "id":
			id, err := strconv.Atoi(val.Value)
			if err != nil || id <= 0 {
				warnings.Addf("line %d: invalid border id %q", val.Line, val.Value)
				return false
			}
			b.ID = id
			hasID = true
		case "group":
			g, err := strconv.Atoi(val.Value)
			if err != nil {
				warnings.Addf("line %d: invalid border group %q", val.Line, val.Value)
				continue
			}
			b.Group = g
		case "items":
			b.unserializeItems(val, warnings)
		default:
			warnings.Addf("line %d: unknown border key %q", key.Line, key.Value)
		}
	}
	if !hasID {
		warnings.Addf("line %d: border without id", node.Line)
		return false
	}
	if len(b.Table.Slots) == 0 {
		b.Table = NewTable(AlignmentCount, int(Center))
	}
	return true
}

func (b *AutoBorder) unserializeItems(node *yaml.Node, warnings *Warnings) {
	if node.Kind != yaml.MappingNode {
		warnings.Addf("line %d: border items must be a mapping of alignment to items", node.Line)
		return
	}
	if len(b.Table.Slots) == 0 {
		b.Table = NewTable(AlignmentCount, int(Center))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		align, ok := ParseAlignment(key.Value)
		if !ok {
			warnings.Addf("line %d: unknown border alignment %q", key.Line, key.Value)
			continue
		}
		for _, w := range DecodeWeighted(val, warnings) {
			b.Table.Add(int(align), w)
		}
	}
}

// DecodeWeighted reads a scalar item id, a {id, chance} mapping, or a
// sequence of either. A bare id has chance 1.
func DecodeWeighted(node *yaml.Node, warnings *Warnings) []Weighted {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.SequenceNode:
		var out []Weighted
		for _, c := range node.Content {
			out = append(out, DecodeWeighted(c, warnings)...)
		}
		return out
	case yaml.ScalarNode:
		id, ok := parseItemID(node.Value)
		if !ok {
			warnings.Addf("line %d: invalid item id %q", node.Line, node.Value)
			return nil
		}
		return []Weighted{{ItemID: id, Chance: 1}}
	case yaml.MappingNode:
		var raw struct {
			ID     int  `yaml:"id"`
			Chance *int `yaml:"chance"`
		}
		if err := node.Decode(&raw); err != nil {
			warnings.Addf("line %d: invalid item entry: %v", node.Line, err)
			return nil
		}
		if raw.ID <= 0 || raw.ID > 0xffff {
			warnings.Addf("line %d: invalid item id %d", node.Line, raw.ID)
			return nil
		}
		id := uint16(raw.ID)
		chance := 1
		if raw.Chance != nil {
			chance = *raw.Chance
		}
		if chance < 0 {
			warnings.Addf("line %d: negative chance %d for item %d", node.Line, chance, id)
			return nil
		}
		return []Weighted{{ItemID: id, Chance: chance}}
	}
	warnings.Addf("line %d: unsupported item node", node.Line)
	return nil
}

func parseItemID(s string) (uint16, bool) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint16(v), true
}

func lineOf(node *yaml.Node) int {
	if node == nil {
		return 0
	}
	return node.Line
}

// Catalog holds every loaded AutoBorder by id.
type Catalog struct {
	borders map[int]*AutoBorder
	items   map[uint16]int
}

func NewCatalog() *Catalog {
	return &Catalog{
		borders: make(map[int]*AutoBorder),
		items:   make(map[uint16]int),
	}
}

// Add registers b. A border id may only be registered once.
func (c *Catalog) Add(b *AutoBorder) error {
	if b == nil {
		return nil
	}
	if _, ok := c.borders[b.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateBorder, b.ID)
	}
	c.borders[b.ID] = b
	for _, id := range b.Table.Items() {
		if _, ok := c.items[id]; !ok {
			c.items[id] = b.ID
		}
	}
	return nil
}

// Get returns the border with the given id, or nil.
func (c *Catalog) Get(id int) *AutoBorder {
	if c == nil {
		return nil
	}
	return c.borders[id]
}

// BorderOfItem returns the id of the border that lists itemID.
func (c *Catalog) BorderOfItem(itemID uint16) (int, bool) {
	if c == nil {
		return 0, false
	}
	id, ok := c.items[itemID]
	return id, ok
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.borders)
}

// IDs returns the registered border ids in ascending order.
func (c *Catalog) IDs() []int {
	ids := make([]int, 0, len(c.borders))
	for id := range c.borders {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
