package systems

import (
	"image/color"

	"github.com/automoto/tankarena/archetypes"
	"github.com/automoto/tankarena/components"
	cfg "github.com/automoto/tankarena/config"
	"github.com/automoto/tankarena/shared/gamemath"
	"github.com/automoto/tankarena/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

var markerQuery = donburi.NewQuery(filter.Contains(tags.Marker))

// SpawnMarker places a fading destination marker at p.
func SpawnMarker(w donburi.World, p gamemath.Point) {
	entry := archetypes.Marker.Spawn(w)
	components.Marker.SetValue(entry, components.MarkerData{
		At:    p,
		Fade:  gween.New(1, 0, float32(cfg.Tank.MarkerFade), ease.OutQuad),
		Alpha: 1,
	})
}

// NewMarkerSystem returns an ECS system that fades markers and removes them
// once the fade completes.
func NewMarkerSystem(step float64) func(*ecs.ECS) {
	var finished []donburi.Entity
	return func(e *ecs.ECS) {
		finished = finished[:0]
		markerQuery.Each(e.World, func(entry *donburi.Entry) {
			if components.Marker.Get(entry).Update(step) {
				finished = append(finished, entry.Entity())
			}
		})
		for _, entity := range finished {
			e.World.Remove(entity)
		}
	}
}

func DrawMarkers(e *ecs.ECS, screen *ebiten.Image) {
	size := float32(cfg.Tank.MarkerSize)
	markerQuery.Each(e.World, func(entry *donburi.Entry) {
		m := components.Marker.Get(entry)
		a := clamp01(m.Alpha)
		// color.RGBA is alpha-premultiplied.
		clr := color.RGBA{
			R: uint8(float32(cfg.Yellow.R) * a),
			G: uint8(float32(cfg.Yellow.G) * a),
			B: uint8(float32(cfg.Yellow.B) * a),
			A: uint8(255 * a),
		}
		x, y := float32(m.At.X), float32(m.At.Y)
		vector.StrokeLine(screen, x-size, y-size, x+size, y+size, 2, clr, true)
		vector.StrokeLine(screen, x-size, y+size, x+size, y-size, 2, clr, true)
	})
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
