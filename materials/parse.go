package materials

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/mapgrid"
)

// Set is one loaded generation of borders and brushes. It is never mutated
// after the load that built it.
type Set struct {
	Brushes *brush.Registry
	Borders *autoborder.Catalog
}

// Built-in brush names. Material files cannot redefine them.
const (
	EraserName         = "eraser"
	SpawnName          = "spawn"
	OptionalBorderName = "optional border"
	ProtectionZoneName = "pz"
	NoPVPName          = "no pvp"
	NoLogoutName       = "no logout"
	PVPZoneName        = "pvp zone"
)

var builtinKinds = map[brush.Kind]bool{
	brush.KindEraser:         true,
	brush.KindSpawn:          true,
	brush.KindOptionalBorder: true,
	brush.KindFlag:           true,
}

func builtins() []*brush.Brush {
	return []*brush.Brush{
		brush.NewEraser(EraserName),
		brush.NewSpawn(SpawnName),
		brush.NewOptionalBorder(OptionalBorderName),
		brush.NewFlag(ProtectionZoneName, brush.FlagSpec{Flag: mapgrid.ProtectionZone}),
		brush.NewFlag(NoPVPName, brush.FlagSpec{Flag: mapgrid.NoPVP}),
		brush.NewFlag(NoLogoutName, brush.FlagSpec{Flag: mapgrid.NoLogout}),
		brush.NewFlag(PVPZoneName, brush.FlagSpec{Flag: mapgrid.PVPZone}),
	}
}

type borderRef struct {
	To string `yaml:"to"`
	ID int    `yaml:"id"`
}

type compositeTileNode struct {
	X     int      `yaml:"x"`
	Y     int      `yaml:"y"`
	Z     int      `yaml:"z"`
	Items []uint16 `yaml:"items"`
}

type compositeNode struct {
	Chance int                 `yaml:"chance"`
	Tiles  []compositeTileNode `yaml:"tiles"`
}

type doorNode struct {
	ID   uint16 `yaml:"id"`
	Type string `yaml:"type"`
	Open bool   `yaml:"open"`
}

// brushNode is the union of every key a brush entry may carry.
type brushNode struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Look  uint16 `yaml:"look"`
	Color string `yaml:"color"`

	Items   yaml.Node `yaml:"items"`
	Friends []string  `yaml:"friends"`
	Hate    bool      `yaml:"hate"`

	ZOrder         int         `yaml:"z_order"`
	Borders        []borderRef `yaml:"borders"`
	OptionalBorder int         `yaml:"optional_border"`

	Alignments yaml.Node `yaml:"alignments"`
	DoorType   string    `yaml:"door_type"`
	Open       bool      `yaml:"open"`

	Composites  []compositeNode `yaml:"composites"`
	OnBlocking  bool            `yaml:"on_blocking"`
	OnDuplicate bool            `yaml:"on_duplicate"`
	OneSize     bool            `yaml:"one_size"`
	Draggable   bool            `yaml:"draggable"`
	Blocking    bool            `yaml:"blocking"`

	Item      uint16   `yaml:"item"`
	Flags     []string `yaml:"flags"`
	Creature  string   `yaml:"creature"`
	SpawnTime int      `yaml:"spawn_time"`
	HouseID   uint32   `yaml:"house_id"`
	Waypoint  string   `yaml:"waypoint"`
}

// pending holds the name references of a brush, resolved once every file
// has been read.
type pending struct {
	b       *brush.Brush
	file    string
	line    int
	friends []string
	borders []borderRef
}

type builder struct {
	set      *Set
	warnings autoborder.Warnings
	refs     []pending
}

func newBuilder() *builder {
	s := &Set{Brushes: brush.NewRegistry(), Borders: autoborder.NewCatalog()}
	b := &builder{set: s}
	for _, br := range builtins() {
		if err := s.Brushes.Add(br); err != nil {
			b.warnings.Addf("built-in brush %s: %v", br.Name, err)
		}
	}
	return b
}

// Parse reads a single materials document.
func Parse(name string, data []byte) (*Set, autoborder.Warnings, error) {
	b := newBuilder()
	if err := b.parse(name, data); err != nil {
		return nil, nil, err
	}
	return b.finish()
}

func (b *builder) parse(name string, data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("materials: unmarshal %s: %w", name, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("materials: unmarshal %s: line %d: document must be a mapping", name, root.Line)
	}
	w := &b.warnings
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "borders":
			b.borders(name, val)
		case "brushes":
			b.brushes(name, val)
		default:
			w.Addf("%s: line %d: unknown section %q", name, key.Line, key.Value)
		}
	}
	return nil
}

func (b *builder) borders(file string, node *yaml.Node) {
	if node.Kind != yaml.SequenceNode {
		b.warnings.Addf("%s: line %d: borders must be a list", file, node.Line)
		return
	}
	for _, n := range node.Content {
		var local autoborder.Warnings
		ab := autoborder.New(0)
		ok := ab.Unserialize(n, &local)
		b.prefix(file, local)
		if !ok {
			continue
		}
		if err := b.set.Borders.Add(ab); err != nil {
			b.warnings.Addf("%s: line %d: %v", file, n.Line, err)
		}
	}
}

func (b *builder) prefix(file string, ws autoborder.Warnings) {
	for _, msg := range ws {
		b.warnings.Addf("%s: %s", file, msg)
	}
}

func (b *builder) brushes(file string, node *yaml.Node) {
	if node.Kind != yaml.SequenceNode {
		b.warnings.Addf("%s: line %d: brushes must be a list", file, node.Line)
		return
	}
	for _, n := range node.Content {
		var bn brushNode
		if err := n.Decode(&bn); err != nil {
			b.warnings.Addf("%s: line %d: invalid brush: %v", file, n.Line, err)
			continue
		}
		var local autoborder.Warnings
		br := b.brush(&bn, n.Line, &local)
		b.prefix(file, local)
		if br == nil {
			continue
		}
		if err := b.set.Brushes.Add(br); err != nil {
			b.warnings.Addf("%s: line %d: %v", file, n.Line, err)
			continue
		}
		if len(bn.Friends) > 0 || len(bn.Borders) > 0 || bn.OptionalBorder != 0 {
			b.refs = append(b.refs, pending{b: br, file: file, line: n.Line, friends: bn.Friends, borders: bn.Borders})
		}
	}
}

func (b *builder) brush(n *brushNode, line int, w *autoborder.Warnings) *brush.Brush {
	if n.Name == "" {
		w.Addf("line %d: brush without name", line)
		return nil
	}
	kind, ok := brush.ParseKind(n.Type)
	if !ok {
		w.Addf("line %d: brush %q has unknown type %q", line, n.Name, n.Type)
		return nil
	}
	if builtinKinds[kind] {
		w.Addf("line %d: brush %q: type %q is built in", line, n.Name, n.Type)
		return nil
	}
	if existing := b.set.Brushes.Get(n.Name); existing != nil && builtinKinds[existing.Kind] {
		w.Addf("line %d: brush name %q is reserved", line, n.Name)
		return nil
	}

	var br *brush.Brush
	switch kind {
	case brush.KindGround:
		br = brush.NewGround(n.Name, brush.GroundSpec{
			ZOrder:         n.ZOrder,
			Items:          items(&n.Items, w),
			OptionalBorder: n.OptionalBorder,
		})
	case brush.KindWall:
		br = brush.NewWall(n.Name, brush.WallSpec{})
		wallAlignments(br.Wall, &n.Alignments, w)
	case brush.KindDoor:
		typ, ok := brush.ParseDoorType(n.DoorType)
		if !ok {
			w.Addf("line %d: brush %q: unknown door type %q", line, n.Name, n.DoorType)
			return nil
		}
		br = brush.NewDoor(n.Name, brush.DoorSpec{Type: typ, Open: n.Open})
	case brush.KindTable:
		br = brush.NewTable(n.Name, brush.TableSpec{})
		slotted(&br.Table.Table, &n.Alignments, func(s string) (int, bool) {
			a, ok := autoborder.ParseTableAlignment(s)
			return int(a), ok
		}, w)
	case brush.KindCarpet:
		br = brush.NewCarpet(n.Name, brush.CarpetSpec{})
		slotted(&br.Carpet.Table, &n.Alignments, func(s string) (int, bool) {
			a, ok := autoborder.ParseAlignment(s)
			return int(a), ok
		}, w)
	case brush.KindDoodad:
		spec := brush.DoodadSpec{
			Items:       items(&n.Items, w),
			OnBlocking:  n.OnBlocking,
			OnDuplicate: n.OnDuplicate,
			OneSize:     n.OneSize,
			Draggable:   n.Draggable,
			Blocking:    n.Blocking,
		}
		for _, c := range n.Composites {
			if c.Chance < 0 {
				w.Addf("line %d: brush %q: negative composite chance %d", line, n.Name, c.Chance)
				continue
			}
			comp := brush.Composite{Chance: c.Chance}
			for _, t := range c.Tiles {
				comp.Tiles = append(comp.Tiles, brush.CompositeTile{DX: t.X, DY: t.Y, DZ: t.Z, Items: t.Items})
			}
			spec.Composites = append(spec.Composites, comp)
		}
		br = brush.NewDoodad(n.Name, spec)
	case brush.KindRaw:
		if n.Item == 0 {
			w.Addf("line %d: brush %q: raw brush without item", line, n.Name)
			return nil
		}
		br = brush.NewRaw(n.Name, brush.RawSpec{ItemID: n.Item, Flags: itemFlags(n.Flags, line, w)})
	case brush.KindCreature:
		if n.Creature == "" {
			w.Addf("line %d: brush %q: creature brush without creature", line, n.Name)
			return nil
		}
		br = brush.NewCreature(n.Name, brush.CreatureSpec{Creature: n.Creature, SpawnTime: n.SpawnTime})
	case brush.KindHouse:
		br = brush.NewHouse(n.Name, brush.HouseSpec{HouseID: n.HouseID})
	case brush.KindHouseExit:
		br = brush.NewHouseExit(n.Name, brush.HouseSpec{HouseID: n.HouseID})
	case brush.KindWaypoint:
		name := n.Waypoint
		if name == "" {
			name = n.Name
		}
		br = brush.NewWaypoint(n.Name, brush.WaypointSpec{Waypoint: name})
	default:
		return nil
	}
	br.LookID = n.Look
	if n.Color != "" {
		if rgb, ok := parseColor(n.Color); ok {
			br.Color = rgb
		} else {
			w.Addf("line %d: brush %q: unknown color %q", line, n.Name, n.Color)
		}
	}
	if fl := br.Friends(); fl != nil {
		fl.Hate = n.Hate
	}
	return br
}

func items(node *yaml.Node, w *autoborder.Warnings) []autoborder.Weighted {
	if node.Kind == 0 {
		return nil
	}
	return autoborder.DecodeWeighted(node, w)
}

// slotted fills tbl from a mapping of slot name to weighted items.
func slotted(tbl *autoborder.Table, node *yaml.Node, parse func(string) (int, bool), w *autoborder.Warnings) {
	if node.Kind == 0 {
		return
	}
	if node.Kind != yaml.MappingNode {
		w.Addf("line %d: alignments must be a mapping", node.Line)
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		slot, ok := parse(key.Value)
		if !ok {
			w.Addf("line %d: unknown alignment %q", key.Line, key.Value)
			continue
		}
		for _, it := range autoborder.DecodeWeighted(val, w) {
			tbl.Add(slot, it)
		}
	}
}

// wallAlignments reads either plain weighted items or an {items, doors}
// mapping per wall alignment.
func wallAlignments(spec *brush.WallSpec, node *yaml.Node, w *autoborder.Warnings) {
	if node.Kind == 0 {
		return
	}
	if node.Kind != yaml.MappingNode {
		w.Addf("line %d: alignments must be a mapping", node.Line)
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		align, ok := autoborder.ParseWallAlignment(key.Value)
		if !ok {
			w.Addf("line %d: unknown wall alignment %q", key.Line, key.Value)
			continue
		}
		if !isWallSlot(val) {
			for _, it := range autoborder.DecodeWeighted(val, w) {
				spec.Table.Add(int(align), it)
			}
			continue
		}
		for j := 0; j+1 < len(val.Content); j += 2 {
			k, v := val.Content[j], val.Content[j+1]
			switch k.Value {
			case "items":
				for _, it := range autoborder.DecodeWeighted(v, w) {
					spec.Table.Add(int(align), it)
				}
			case "doors":
				var doors []doorNode
				if err := v.Decode(&doors); err != nil {
					w.Addf("line %d: invalid doors: %v", v.Line, err)
					continue
				}
				for _, d := range doors {
					typ, ok := brush.ParseDoorType(d.Type)
					if !ok || d.ID == 0 {
						w.Addf("line %d: invalid door %d of type %q", v.Line, d.ID, d.Type)
						continue
					}
					spec.Doors[align] = append(spec.Doors[align], brush.DoorItem{ID: d.ID, Type: typ, Open: d.Open})
				}
			default:
				w.Addf("line %d: unknown wall key %q", k.Line, k.Value)
			}
		}
	}
}

func isWallSlot(n *yaml.Node) bool {
	if n.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i].Value; k == "items" || k == "doors" {
			return true
		}
	}
	return false
}

var itemFlagNames = map[string]mapgrid.ItemFlags{
	"ground":        mapgrid.FlagGround,
	"ground_border": mapgrid.FlagGroundBorder,
	"wall":          mapgrid.FlagWall,
	"door":          mapgrid.FlagDoor,
	"table":         mapgrid.FlagTable,
	"carpet":        mapgrid.FlagCarpet,
	"blocking":      mapgrid.FlagBlocking,
}

func itemFlags(names []string, line int, w *autoborder.Warnings) mapgrid.ItemFlags {
	var f mapgrid.ItemFlags
	for _, n := range names {
		flag, ok := itemFlagNames[n]
		if !ok {
			w.Addf("line %d: unknown item flag %q", line, n)
			continue
		}
		f |= flag
	}
	return f
}

// parseColor accepts an SVG color name or #rrggbb.
func parseColor(s string) ([3]uint8, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 {
			return [3]uint8{}, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return [3]uint8{}, false
		}
		return [3]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
	}
	c, ok := colornames.Map[s]
	if !ok {
		return [3]uint8{}, false
	}
	return [3]uint8{c.R, c.G, c.B}, true
}

// finish resolves friend and border names now that every brush is known.
func (b *builder) finish() (*Set, autoborder.Warnings, error) {
	reg := b.set.Brushes
	w := &b.warnings
	for _, p := range b.refs {
		if g := p.b.Ground; g != nil && g.OptionalBorder != 0 && b.set.Borders.Get(g.OptionalBorder) == nil {
			w.Addf("%s: line %d: brush %q: unknown optional border %d", p.file, p.line, p.b.Name, g.OptionalBorder)
			g.OptionalBorder = 0
		}
		fl := p.b.Friends()
		for _, name := range p.friends {
			if name == "all" {
				if fl != nil {
					fl.Add(brush.FriendOfAll)
				}
				continue
			}
			other := reg.Get(name)
			if other == nil {
				w.Addf("%s: line %d: brush %q: unknown friend %q", p.file, p.line, p.b.Name, name)
				continue
			}
			if fl == nil {
				w.Addf("%s: line %d: brush %q of type %s cannot have friends", p.file, p.line, p.b.Name, p.b.Kind)
				break
			}
			fl.Add(other.ID)
		}
		for _, ref := range p.borders {
			if p.b.Kind != brush.KindGround {
				w.Addf("%s: line %d: brush %q of type %s cannot have borders", p.file, p.line, p.b.Name, p.b.Kind)
				break
			}
			if b.set.Borders.Get(ref.ID) == nil {
				w.Addf("%s: line %d: brush %q: unknown border %d", p.file, p.line, p.b.Name, ref.ID)
				continue
			}
			var to brush.ID
			switch ref.To {
			case "all", "":
				to = brush.FriendOfAll
			case "none":
				to = 0
			default:
				other := reg.Get(ref.To)
				if other == nil || other.Kind != brush.KindGround {
					w.Addf("%s: line %d: brush %q: border toward unknown ground %q", p.file, p.line, p.b.Name, ref.To)
					continue
				}
				to = other.ID
			}
			p.b.Ground.Borders = append(p.b.Ground.Borders, brush.GroundBorder{To: to, BorderID: ref.ID})
		}
	}
	b.refs = nil
	return b.set, b.warnings, nil
}
