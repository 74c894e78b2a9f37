package paint

import (
	"math"
	"testing"

	"github.com/milk9111/tilebrush/mapgrid"
)

func TestAffectedTiles(t *testing.T) {
	cases := []struct {
		name     string
		size     int
		shape    Shape
		draw     int
		halo     int
		centerIn bool
	}{
		{"square_0", 0, Square, 1, 9, true},
		{"square_1", 1, Square, 9, 25, true},
		{"square_negative", -4, Square, 1, 9, true},
		{"circle_2", 2, Circle, 13, 36, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			center := mapgrid.Pos(10, 10, floor)
			draw, halo := AffectedTiles(center, c.size, c.shape)
			if len(draw) != c.draw || len(halo) != c.halo {
				t.Fatalf("draw %d halo %d, want %d and %d", len(draw), len(halo), c.draw, c.halo)
			}
			found := false
			for _, p := range halo {
				if p == center {
					found = true
				}
			}
			if found != c.centerIn {
				t.Fatalf("center in halo = %v", found)
			}
		})
	}
}

func TestAffectedTilesCircleRadius(t *testing.T) {
	center := mapgrid.Pos(10, 10, floor)
	draw, _ := AffectedTiles(center, 2, Circle)
	in := make(map[mapgrid.Position]bool, len(draw))
	for _, p := range draw {
		in[p] = true
	}
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			p := center.Offset(dx, dy)
			dist := math.Sqrt(float64(dx*dx + dy*dy))
			if want := dist < 2.005; in[p] != want {
				t.Errorf("%v at distance %.3f: drawn = %v", p, dist, in[p])
			}
		}
	}
}

func TestParseShape(t *testing.T) {
	for _, s := range []Shape{Square, Circle} {
		got, ok := ParseShape(s.String())
		if !ok || got != s {
			t.Fatalf("ParseShape(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseShape("hexagon"); ok {
		t.Fatalf("unknown shape accepted")
	}
}
