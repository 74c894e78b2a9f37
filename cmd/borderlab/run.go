package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/levels"
	"github.com/milk9111/tilebrush/mapgrid"
	"github.com/milk9111/tilebrush/materials"
	"github.com/milk9111/tilebrush/paint"
	"github.com/milk9111/tilebrush/settings"
)

type runner struct {
	cfg     settings.Settings
	sc      *levels.Scenario
	out     io.Writer
	color   bool
	preview bool
	src     autoborder.Source
}

// run builds the scenario against set, borders the starting layout, replays
// the strokes through an undo history and prints the result.
func (r *runner) run(set *materials.Set) error {
	env := &paint.Env{
		Brushes:  set.Brushes,
		Borders:  set.Borders,
		Settings: r.cfg,
		Rand:     r.src,
	}
	m, err := r.sc.Build(set.Brushes, r.src)
	if err != nil {
		return err
	}
	pipe := paint.NewPipeline(env)
	if err := settle(pipe, m, r.sc.Floor); err != nil {
		return err
	}

	hist := paint.NewHistory(r.cfg.MaxUndo)
	var pv *paint.Preview
	if r.preview {
		pv = paint.NewPreview(pipe)
	}
	for i, st := range r.sc.Strokes {
		g, err := st.Gesture(set.Brushes, r.sc.Floor)
		if err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
		if pv != nil {
			pv.Update(m, g)
			n := 0
			if buf := pv.Buffer(); buf != nil {
				n = buf.Len()
			}
			log.Printf("stroke %d (%s): preview overlays %d tiles", i, g.Brush, n)
		}
		if err := pipe.Apply(m, g, hist); err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
	}
	for i := 0; i < r.sc.Undo; i++ {
		if !hist.Undo(m) {
			break
		}
	}

	d := &dumper{out: r.out, reg: set.Brushes, glyphs: r.sc.Glyphs(), color: r.color}
	d.grid(m, r.sc.Floor)
	d.tiles(m, r.sc.Floor)

	bordered, err := m.SelectBox(context.Background(),
		mapgrid.Pos(0, 0, r.sc.Floor), mapgrid.Pos(m.Width()-1, m.Height()-1, r.sc.Floor),
		func(t *mapgrid.Tile) bool { return t.FindItem(mapgrid.Item.IsGroundBorder) >= 0 })
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s: %d tiles, %d bordered, %d undo steps left\n", r.sc.Name, m.Len(), len(bordered), hist.Len())
	return nil
}

// settle borders the starting layout of the floor in one pass.
func settle(pipe *paint.Pipeline, m *mapgrid.Map, floor int) error {
	var ps []mapgrid.Position
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if t := m.TileAt(x, y, floor); t != nil {
				ps = append(ps, t.Position())
			}
		}
	}
	return pipe.Reborder(m, ps, paint.MapCommitter{})
}
