package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/mapgrid"
)

type dumper struct {
	out    io.Writer
	reg    *brush.Registry
	glyphs map[string]byte
	color  bool
}

// glyph picks one character for a tile: the topmost structure, else the
// ground's legend letter, upper-cased when the tile carries ground borders.
func (d *dumper) glyph(t *mapgrid.Tile) (byte, *brush.Brush) {
	if t == nil {
		return ' ', nil
	}
	for i := len(t.Items) - 1; i >= 0; i-- {
		it := t.Items[i]
		b := d.reg.OfItem(it.ID)
		switch {
		case it.IsDoor():
			return '+', b
		case it.IsWall():
			return '#', b
		case it.IsTable():
			return 'T', b
		case it.IsCarpet():
			return '=', b
		case !it.IsGroundBorder() && b != nil && b.Kind == brush.KindDoodad:
			return '*', b
		}
	}
	gb := d.reg.GroundOf(t)
	if gb == nil {
		if t.Ground != nil {
			return '?', nil
		}
		return '.', nil
	}
	c, ok := d.glyphs[gb.Name]
	if !ok {
		c = gb.Name[0]
	}
	if t.FindItem(mapgrid.Item.IsGroundBorder) >= 0 {
		c = strings.ToUpper(string(c))[0]
	}
	return c, gb
}

func (d *dumper) grid(m *mapgrid.Map, floor int) {
	var sb strings.Builder
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c, b := d.glyph(m.TileAt(x, y, floor))
			if d.color && b != nil {
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm%c\x1b[0m", b.Color[0], b.Color[1], b.Color[2], c)
				continue
			}
			sb.WriteByte(c)
		}
		sb.WriteByte('\n')
	}
	io.WriteString(d.out, sb.String())
}

// tiles lists every tile that holds items, in row order.
func (d *dumper) tiles(m *mapgrid.Map, floor int) {
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			t := m.TileAt(x, y, floor)
			if t == nil || len(t.Items) == 0 {
				continue
			}
			ground := "-"
			if t.Ground != nil {
				ground = fmt.Sprint(t.Ground.ID)
				if gb := d.reg.GroundOf(t); gb != nil {
					ground = fmt.Sprintf("%s[%d]", gb.Name, t.Ground.ID)
				}
			}
			ids := make([]string, 0, len(t.Items))
			for _, it := range t.Items {
				ids = append(ids, fmt.Sprint(it.ID))
			}
			fmt.Fprintf(d.out, "%v ground=%s items=[%s]\n", t.Position(), ground, strings.Join(ids, " "))
		}
	}
}
