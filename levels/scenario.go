package levels

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/mapgrid"
	"github.com/milk9111/tilebrush/paint"
)

var ErrUnknownBrush = errors.New("levels: unknown brush")

// Point is an x, y pair on the scenario floor.
type Point [2]int

// Stroke is one recorded gesture.
type Stroke struct {
	Brush   string  `yaml:"brush"`
	At      []Point `yaml:"at"`
	Size    int     `yaml:"size"`
	Shape   string  `yaml:"shape"`
	Erase   bool    `yaml:"erase"`
	Alt     bool    `yaml:"alt"`
	Fill    bool    `yaml:"fill"`
	Replace string  `yaml:"replace"`
	Radius  int     `yaml:"radius"`
}

// Scenario is a starting layout of ground brushes plus the strokes to
// replay over it.
type Scenario struct {
	Name    string            `yaml:"name"`
	Width   int               `yaml:"width"`
	Height  int               `yaml:"height"`
	Floor   int               `yaml:"floor"`
	Legend  map[string]string `yaml:"legend"`
	Rows    []string          `yaml:"rows"`
	Strokes []Stroke          `yaml:"strokes"`
	// Undo is how many strokes to take back after replaying.
	Undo int `yaml:"undo"`
}

func (s *Scenario) normalise() error {
	if s.Floor == 0 {
		s.Floor = mapgrid.GroundFloor
	}
	if s.Floor < 0 || s.Floor > mapgrid.MaxFloor {
		return fmt.Errorf("floor %d out of range", s.Floor)
	}
	if s.Height == 0 {
		s.Height = len(s.Rows)
	}
	if s.Width == 0 {
		for _, r := range s.Rows {
			s.Width = max(s.Width, len(r))
		}
	}
	if s.Width <= 0 || s.Height <= 0 {
		return errors.New("scenario has no area")
	}
	for k := range s.Legend {
		if len(k) != 1 {
			return fmt.Errorf("legend key %q must be one character", k)
		}
	}
	return nil
}

// Glyphs maps brush names back to their legend character.
func (s *Scenario) Glyphs() map[string]byte {
	out := make(map[string]byte, len(s.Legend))
	for k, name := range s.Legend {
		out[name] = k[0]
	}
	return out
}

// Build creates the scenario map and paints the legend's ground brushes.
// No bordering is done.
func (s *Scenario) Build(reg *brush.Registry, src autoborder.Source) (*mapgrid.Map, error) {
	m := mapgrid.New(s.Width, s.Height)
	ctx := &brush.DrawContext{Registry: reg, Rand: src}
	for y, row := range s.Rows {
		for x := 0; x < len(row); x++ {
			name, ok := s.Legend[string(row[x])]
			if !ok {
				continue
			}
			b := reg.Get(name)
			if b == nil {
				return nil, fmt.Errorf("%w %q at (%d,%d)", ErrUnknownBrush, name, x, y)
			}
			t := m.Allocate(m.CreateLocation(mapgrid.Pos(x, y, s.Floor)))
			if t == nil {
				continue
			}
			b.Draw(m, t, ctx)
			if !t.Empty() {
				m.SetTile(t, true)
			}
		}
	}
	return m, nil
}

// Gesture turns the stroke into a paint gesture on floor.
func (st Stroke) Gesture(reg *brush.Registry, floor int) (paint.Gesture, error) {
	b := reg.Get(st.Brush)
	if b == nil {
		return paint.Gesture{}, fmt.Errorf("%w %q", ErrUnknownBrush, st.Brush)
	}
	g := paint.Gesture{
		Brush:       b,
		Size:        st.Size,
		Erase:       st.Erase,
		Alt:         st.Alt,
		Fill:        st.Fill,
		SpawnRadius: st.Radius,
	}
	if st.Shape != "" {
		shape, ok := paint.ParseShape(st.Shape)
		if !ok {
			return paint.Gesture{}, fmt.Errorf("levels: unknown shape %q", st.Shape)
		}
		g.Shape = shape
	}
	if st.Replace != "" {
		if g.Replace = reg.Get(st.Replace); g.Replace == nil {
			return paint.Gesture{}, fmt.Errorf("%w %q", ErrUnknownBrush, st.Replace)
		}
	}
	for _, p := range st.At {
		g.Points = append(g.Points, mapgrid.Pos(p[0], p[1], floor))
	}
	return g, nil
}
