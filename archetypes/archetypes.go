package archetypes

import (
	"github.com/automoto/tankarena/components"
	"github.com/automoto/tankarena/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

var (
	Tank = newArchetype(
		tags.Tank,
		esync.NetworkIdComponent,
		components.Tank,
		components.Motion,
		components.Track,
	)
	Marker = newArchetype(
		tags.Marker,
		components.Marker,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
