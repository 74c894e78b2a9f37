package border

import (
	"math"
	"sort"

	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/mapgrid"
)

// Resolver rewrites the border items of single tiles from their neighbours.
// It keeps no state between calls.
type Resolver struct {
	brushes *brush.Registry
	borders *autoborder.Catalog
	picker  *autoborder.Picker
}

func NewResolver(brushes *brush.Registry, borders *autoborder.Catalog, src autoborder.Source) *Resolver {
	return &Resolver{
		brushes: brushes,
		borders: borders,
		picker:  autoborder.NewPicker(src),
	}
}

type cluster struct {
	b    *brush.Brush
	mask uint8
}

// Ground recomputes the ground border items of t. Each neighbouring ground
// brush that outranks t's own ground and is not friends with it contributes
// the borders of its border set toward t's brush. Groundless tiles only get
// borders when flagged for optional bordering.
func (r *Resolver) Ground(m *mapgrid.Map, t *mapgrid.Tile) {
	if t == nil {
		return
	}
	optional := t.Ground == nil
	if optional && !t.Flags.Has(mapgrid.OptionalBorder) {
		CleanGround(t)
		return
	}

	cur := r.brushes.GroundOf(t)
	var curID brush.ID
	curZ := math.MinInt
	if cur != nil {
		curID = cur.ID
		curZ = cur.Ground.ZOrder
	}

	var clusters []cluster
	p := t.Position()
	for _, d := range around8 {
		nb := r.brushes.GroundOf(m.Tile(p.Offset(d.dx, d.dy)))
		if nb == nil || nb == cur || nb.FriendOf(curID) || nb.Ground.ZOrder <= curZ {
			continue
		}
		found := false
		for i := range clusters {
			if clusters[i].b == nb {
				clusters[i].mask |= d.bit
				found = true
				break
			}
		}
		if !found {
			clusters = append(clusters, cluster{b: nb, mask: d.bit})
		}
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		zi, zj := clusters[i].b.Ground.ZOrder, clusters[j].b.Ground.ZOrder
		if zi != zj {
			return zi < zj
		}
		return clusters[i].b.ID < clusters[j].b.ID
	})

	existing := borderItems(t)
	used := make([]bool, len(existing))
	var out []mapgrid.Item
	for _, c := range clusters {
		var setID int
		var ok bool
		if optional {
			setID, ok = c.b.Ground.OptionalBorder, c.b.Ground.OptionalBorder != 0
		} else {
			setID, ok = c.b.Ground.BorderToward(curID)
		}
		if !ok {
			continue
		}
		ab := r.borders.Get(setID)
		if ab == nil {
			continue
		}
		for _, align := range autoborder.GroundBorders(c.mask) {
			if it, ok := r.reuseOrPick(ab.Table, int(align), existing, used); ok {
				it.Flags |= mapgrid.FlagGroundBorder
				out = append(out, it)
			}
		}
	}

	CleanGround(t)
	t.InsertBorders(out)
}

// reuseOrPick keeps an unused existing item that the table would produce for
// slot, so repeated resolution does not re-roll variants.
func (r *Resolver) reuseOrPick(tbl autoborder.Table, slot int, existing []mapgrid.Item, used []bool) (mapgrid.Item, bool) {
	eff, ok := tbl.Effective(slot)
	if !ok {
		return mapgrid.Item{}, false
	}
	for i, it := range existing {
		if !used[i] && tbl.InSlot(eff, it.ID) {
			used[i] = true
			return it, true
		}
	}
	id := r.picker.Pick(tbl, slot)
	if id == 0 {
		return mapgrid.Item{}, false
	}
	return mapgrid.Item{ID: id}, true
}

func borderItems(t *mapgrid.Tile) []mapgrid.Item {
	var out []mapgrid.Item
	for _, it := range t.Items {
		if it.IsGroundBorder() {
			out = append(out, it)
		}
	}
	return out
}

// Walls realigns every wall and door on t to its 4-way neighbourhood. Doors
// keep their type and open state when the new alignment offers one.
func (r *Resolver) Walls(m *mapgrid.Map, t *mapgrid.Tile) {
	if t == nil {
		return
	}
	for i, it := range t.Items {
		if !it.IsWall() {
			continue
		}
		wb := r.brushes.OfItem(it.ID)
		if wb == nil || wb.Kind != brush.KindWall {
			continue
		}
		occupied := func(n *mapgrid.Tile) bool { return r.hasFamily(n, wb, mapgrid.Item.IsWall) }
		align := autoborder.ClassifyWall(mask(m, t.Position(), around4[:], occupied))
		t.Items[i] = r.realignWall(wb.Wall, it, align)
	}
}

func (r *Resolver) realignWall(w *brush.WallSpec, it mapgrid.Item, align autoborder.WallAlignment) mapgrid.Item {
	if door, at, ok := w.DoorOf(it.ID); ok {
		if at == align {
			return it
		}
		if d, ok := w.FindDoor(align, door.Type, door.Open); ok {
			return mapgrid.Item{ID: d.ID, Subtype: it.Subtype, Flags: it.Flags}
		}
		if id := r.picker.Pick(w.Table, int(align)); id != 0 {
			return mapgrid.Item{ID: id, Flags: mapgrid.FlagWall | mapgrid.FlagBlocking}
		}
		return it
	}
	return r.realign(w.Table, int(align), it)
}

// realign keeps it when the table would produce it for slot, otherwise picks
// a replacement carrying the same flags.
func (r *Resolver) realign(tbl autoborder.Table, slot int, it mapgrid.Item) mapgrid.Item {
	eff, ok := tbl.Effective(slot)
	if !ok || tbl.InSlot(eff, it.ID) {
		return it
	}
	id := r.picker.Pick(tbl, slot)
	if id == 0 {
		return it
	}
	return mapgrid.Item{ID: id, Subtype: it.Subtype, Flags: it.Flags}
}

// Tables reshapes every table on t from its 4-way neighbourhood.
func (r *Resolver) Tables(m *mapgrid.Map, t *mapgrid.Tile) {
	if t == nil {
		return
	}
	for i, it := range t.Items {
		if !it.IsTable() {
			continue
		}
		tb := r.brushes.OfItem(it.ID)
		if tb == nil || tb.Kind != brush.KindTable {
			continue
		}
		occupied := func(n *mapgrid.Tile) bool { return r.hasFamily(n, tb, mapgrid.Item.IsTable) }
		align := autoborder.ClassifyTable(mask(m, t.Position(), around4[:], occupied))
		t.Items[i] = r.realign(tb.Table.Table, int(align), it)
	}
}

// Carpets reshapes every carpet on t from its 8-way neighbourhood.
func (r *Resolver) Carpets(m *mapgrid.Map, t *mapgrid.Tile) {
	if t == nil {
		return
	}
	for i, it := range t.Items {
		if !it.IsCarpet() {
			continue
		}
		cb := r.brushes.OfItem(it.ID)
		if cb == nil || cb.Kind != brush.KindCarpet {
			continue
		}
		occupied := func(n *mapgrid.Tile) bool { return r.hasFamily(n, cb, mapgrid.Item.IsCarpet) }
		align := autoborder.ClassifyCarpet(mask(m, t.Position(), around8[:], occupied))
		t.Items[i] = r.realign(cb.Carpet.Table, int(align), it)
	}
}

// hasFamily reports whether n holds an item of the family placed by b or by
// a brush b counts as a friend.
func (r *Resolver) hasFamily(n *mapgrid.Tile, b *brush.Brush, family func(mapgrid.Item) bool) bool {
	for _, it := range n.Items {
		if !family(it) {
			continue
		}
		ob := r.brushes.OfItem(it.ID)
		if ob == nil {
			continue
		}
		if ob == b || b.FriendOf(ob.ID) {
			return true
		}
	}
	return false
}

// CleanGround strips every ground border item from t.
func CleanGround(t *mapgrid.Tile) int {
	return t.RemoveItems(mapgrid.Item.IsGroundBorder)
}

// CleanWalls strips every wall and door from t.
func CleanWalls(t *mapgrid.Tile) int {
	return t.RemoveItems(mapgrid.Item.IsWall)
}
