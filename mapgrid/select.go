package mapgrid

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SelectBox returns the positions of every tile inside the rectangle spanned
// by from and to (inclusive, on from's floor) for which pred holds, in
// row-major order. Rows are scanned concurrently; the map must not be
// written while the scan runs.
func (m *Map) SelectBox(ctx context.Context, from, to Position, pred func(*Tile) bool) ([]Position, error) {
	x0, x1 := from.X, to.X
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := from.Y, to.Y
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= m.width {
		x1 = m.width - 1
	}
	if y1 >= m.height {
		y1 = m.height - 1
	}
	if x0 > x1 || y0 > y1 {
		return nil, nil
	}

	rows := make([][]Position, y1-y0+1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := y0; y <= y1; y++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var found []Position
			for x := x0; x <= x1; x++ {
				t := m.TileAt(x, y, from.Z)
				if t == nil {
					continue
				}
				if pred == nil || pred(t) {
					found = append(found, t.pos)
				}
			}
			rows[y-y0] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Position
	for _, r := range rows {
		out = append(out, r...)
	}
	return out, nil
}
