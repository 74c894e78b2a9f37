package paint

import (
	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/border"
	"github.com/milk9111/tilebrush/brush"
	"github.com/milk9111/tilebrush/settings"
)

// Env is everything a painting operation reads besides the map itself.
// Build one per loaded material set and pass it down; nothing in the
// painting core reaches for globals.
type Env struct {
	Brushes  *brush.Registry
	Borders  *autoborder.Catalog
	Settings settings.Settings
	Rand     autoborder.Source
}

func (e *Env) resolver() *border.Resolver {
	return border.NewResolver(e.Brushes, e.Borders, e.Rand)
}

func (e *Env) drawContext(g Gesture) *brush.DrawContext {
	return &brush.DrawContext{
		Registry:    e.Brushes,
		Rand:        e.Rand,
		Replace:     g.Replace,
		Alt:         g.Alt,
		SpawnRadius: e.Settings.SpawnRadius(g.SpawnRadius),
	}
}
