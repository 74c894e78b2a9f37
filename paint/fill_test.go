package paint

import (
	"testing"

	"github.com/milk9111/tilebrush/mapgrid"
)

func TestFloodFillRegion(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(10, 10)
	ground(m,
		"gggggg",
		"gwwwgg",
		"gwwwgg",
		"gwwwgw",
		"gggggg",
	)
	f := NewFloodFill(9)

	got := f.Region(m, w.env.Brushes, mapgrid.Pos(2, 2, floor), w.grass)
	if len(got) != 9 {
		t.Fatalf("region has %d tiles, want 9: %v", len(got), got)
	}
	if got[0] != mapgrid.Pos(2, 2, floor) {
		t.Fatalf("region starts at %v", got[0])
	}
	if got[1] != mapgrid.Pos(1, 2, floor) {
		t.Fatalf("west neighbour not visited first: %v", got[1])
	}
	for _, p := range got {
		if m.Tile(p).Ground.ID != 20 {
			t.Fatalf("%v is not water", p)
		}
	}
}

func TestFloodFillNoop(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(10, 10)
	ground(m, "ggg", "ggg")
	f := NewFloodFill(9)
	if got := f.Region(m, w.env.Brushes, mapgrid.Pos(1, 1, floor), w.grass); got != nil {
		t.Fatalf("filling grass with grass = %v", got)
	}
	if got := f.Region(m, w.env.Brushes, mapgrid.Pos(-1, 0, floor), w.grass); got != nil {
		t.Fatalf("out of bounds seed = %v", got)
	}
	m.TileAt(0, 0, floor).Ground.ID = 999
	if got := f.Region(m, w.env.Brushes, mapgrid.Pos(0, 0, floor), w.water); got != nil {
		t.Fatalf("unowned ground filled: %v", got)
	}
}

func TestFloodFillGroundless(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(10, 10)
	f := NewFloodFill(3)
	got := f.Region(m, w.env.Brushes, mapgrid.Pos(5, 5, floor), w.grass)
	if len(got) != 9 {
		t.Fatalf("groundless region has %d tiles, want the 3x3 window", len(got))
	}
}

func TestFloodFillBudget(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(20, 20)
	rows := make([]string, 20)
	for i := range rows {
		rows[i] = "wwwwwwwwwwwwwwwwwwww"
	}
	ground(m, rows...)
	f := NewFloodFill(7)
	got := f.Region(m, w.env.Brushes, mapgrid.Pos(10, 10, floor), w.grass)
	if len(got) != f.Budget() {
		t.Fatalf("region has %d tiles, want %d", len(got), f.Budget())
	}
}

func TestFloodFillBudgetCountsMisses(t *testing.T) {
	w := newWorld(t)
	m := mapgrid.New(20, 20)
	rows := make([]string, 20)
	for y := range rows {
		row := []byte("gggggggggggggggggggg")
		if y%2 == 0 {
			copy(row, "wwwwwwwwwwwwwwwwwwww")
		} else {
			row[10] = 'w'
		}
		rows[y] = string(row)
	}
	ground(m, rows...)
	f := NewFloodFill(9)
	got := f.Region(m, w.env.Brushes, mapgrid.Pos(10, 10, floor), w.grass)
	if len(got) == 0 || len(got) >= f.Budget() {
		t.Fatalf("region has %d tiles, want fewer than the %d visited", len(got), f.Budget())
	}
}
