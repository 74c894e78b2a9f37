package paint

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/mapgrid"
)

var ErrOutOfBounds = errors.New("paint: position out of bounds")

// Change replaces the tile at Pos. A nil After deletes the tile.
type Change struct {
	Pos    mapgrid.Position
	Before *mapgrid.Tile
	After  *mapgrid.Tile
}

// Mark places or removes a map-level marker such as a house exit or a
// waypoint on Pos.
type Mark struct {
	Brush *brush.Brush
	Pos   mapgrid.Position
	Erase bool
}

// Action is an ordered batch of staged replacements. Nothing touches the map
// until a Committer applies it.
type Action struct {
	Changes []Change
	Marks   []Mark
	staged  map[mapgrid.Position]int
}

// Tile returns the tile at p as this action would leave it.
func (a *Action) Tile(m *mapgrid.Map, p mapgrid.Position) *mapgrid.Tile {
	if i, ok := a.staged[p]; ok {
		return a.Changes[i].After
	}
	return m.Tile(p)
}

// Edit returns a private copy of the tile at p to mutate and stage, or a
// fresh tile when the cell is empty. It returns nil outside the map.
func (a *Action) Edit(m *mapgrid.Map, p mapgrid.Position) *mapgrid.Tile {
	if t := a.Tile(m, p); t != nil {
		return t.DeepCopy()
	}
	return m.Allocate(m.CreateLocation(p))
}

// Stage records t as the replacement for its position. An empty tile is
// staged as a deletion. Staging the same position twice keeps the first
// Before.
func (a *Action) Stage(m *mapgrid.Map, t *mapgrid.Tile) {
	if t == nil {
		return
	}
	p := t.Position()
	after := t
	if t.Empty() {
		after = nil
	}
	if i, ok := a.staged[p]; ok {
		a.Changes[i].After = after
		return
	}
	before := m.Tile(p)
	if before == nil && after == nil {
		return
	}
	if a.staged == nil {
		a.staged = make(map[mapgrid.Position]int)
	}
	a.staged[p] = len(a.Changes)
	a.Changes = append(a.Changes, Change{Pos: p, Before: before, After: after})
}

// StageIfChanged stages t only when its content differs from the tile it
// replaces.
func (a *Action) StageIfChanged(m *mapgrid.Map, t *mapgrid.Tile) {
	if t == nil {
		return
	}
	cur := a.Tile(m, t.Position())
	if cur != nil && cur.SameContent(t) && cur.Flags == t.Flags && !t.Empty() {
		return
	}
	a.Stage(m, t)
}

func (a *Action) AddMark(mk Mark) {
	a.Marks = append(a.Marks, mk)
}

func (a *Action) Empty() bool {
	return a == nil || (len(a.Changes) == 0 && len(a.Marks) == 0)
}

// Committer applies a staged action to a map.
type Committer interface {
	Commit(m *mapgrid.Map, a *Action) error
}

// Grouper is implemented by committers that can bundle several commits into
// one undoable step.
type Grouper interface {
	Begin()
	End()
}

// MapCommitter applies actions directly with no history.
type MapCommitter struct{}

func (MapCommitter) Commit(m *mapgrid.Map, a *Action) error {
	return apply(m, a)
}

func apply(m *mapgrid.Map, a *Action) error {
	if a.Empty() {
		return nil
	}
	for _, c := range a.Changes {
		if !m.InBounds(c.Pos) {
			return fmt.Errorf("paint: commit %v: %w", c.Pos, ErrOutOfBounds)
		}
	}
	for _, c := range a.Changes {
		if c.After == nil {
			m.RemoveTile(c.Pos)
			continue
		}
		m.SetTile(c.After, true)
	}
	for _, mk := range a.Marks {
		t := m.Tile(mk.Pos)
		if t == nil {
			t = mapgrid.NewTile(mk.Pos)
		}
		if mk.Erase {
			mk.Brush.Undraw(m, t, nil)
		} else {
			mk.Brush.Draw(m, t, nil)
		}
	}
	return nil
}

// markState is the marker layout a Mark can change.
type markState struct {
	house    uint32
	waypoint string
	pos      mapgrid.Position
	present  bool
	isHouse  bool
}

func captureMark(m *mapgrid.Map, mk Mark) (markState, bool) {
	switch mk.Brush.Kind {
	case brush.KindHouseExit:
		p, ok := m.HouseExit(mk.Brush.House.HouseID)
		return markState{house: mk.Brush.House.HouseID, pos: p, present: ok, isHouse: true}, true
	case brush.KindWaypoint:
		p, ok := m.Waypoint(mk.Brush.Waypoint.Waypoint)
		return markState{waypoint: mk.Brush.Waypoint.Waypoint, pos: p, present: ok}, true
	}
	return markState{}, false
}

func (s markState) restore(m *mapgrid.Map) {
	switch {
	case s.isHouse && s.present:
		m.SetHouseExit(s.house, s.pos)
	case s.isHouse:
		m.RemoveHouseExit(s.house)
	case s.present:
		m.SetWaypoint(s.waypoint, s.pos)
	default:
		m.RemoveWaypoint(s.waypoint)
	}
}

type undoStep struct {
	changes []Change
	marks   []markState
}

// History applies actions and keeps up to max undo steps. Commits made
// between Begin and End form one step.
type History struct {
	max   int
	steps []undoStep
	open  bool
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 100
	}
	return &History{max: limit}
}

func (h *History) Begin() {
	h.push()
	h.open = true
}

func (h *History) End() {
	h.open = false
	if n := len(h.steps); n > 0 && len(h.steps[n-1].changes) == 0 && len(h.steps[n-1].marks) == 0 {
		h.steps = h.steps[:n-1]
	}
}

func (h *History) push() {
	if len(h.steps) >= h.max {
		h.steps = h.steps[1:]
	}
	h.steps = append(h.steps, undoStep{})
}

// Commit applies a and records what it replaced.
func (h *History) Commit(m *mapgrid.Map, a *Action) error {
	if a.Empty() {
		return nil
	}
	var step undoStep
	for _, c := range a.Changes {
		step.changes = append(step.changes, Change{Pos: c.Pos, Before: c.After, After: m.Tile(c.Pos)})
	}
	for _, mk := range a.Marks {
		if s, ok := captureMark(m, mk); ok {
			step.marks = append(step.marks, s)
		}
	}
	if err := apply(m, a); err != nil {
		return err
	}
	if !h.open {
		h.push()
	}
	last := &h.steps[len(h.steps)-1]
	last.changes = append(last.changes, step.changes...)
	last.marks = append(last.marks, step.marks...)
	return nil
}

// Undo reverts the most recent step. It reports false when there is nothing
// to undo.
func (h *History) Undo(m *mapgrid.Map) bool {
	if len(h.steps) == 0 || h.open {
		return false
	}
	idx := len(h.steps) - 1
	step := h.steps[idx]
	h.steps = h.steps[:idx]
	for i := len(step.changes) - 1; i >= 0; i-- {
		c := step.changes[i]
		if c.After == nil {
			m.RemoveTile(c.Pos)
			continue
		}
		m.SetTile(c.After, true)
	}
	for i := len(step.marks) - 1; i >= 0; i-- {
		step.marks[i].restore(m)
	}
	return true
}

// Len returns the number of undo steps held.
func (h *History) Len() int { return len(h.steps) }
