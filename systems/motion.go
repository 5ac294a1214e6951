package systems

import (
	"github.com/automoto/tankarena/arena"
	"github.com/automoto/tankarena/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewMotionSystem returns an ECS system that advances every tank by one fixed
// step of the given length in seconds.
func NewMotionSystem(driver *arena.Driver, step float64) func(*ecs.ECS) {
	return func(_ *ecs.ECS) {
		driver.Tick(step)
	}
}

// NewTrackSystem returns an ECS system that advances the tread loop of every
// tank whose loop is running.
func NewTrackSystem(driver *arena.Driver, step float64) func(*ecs.ECS) {
	return func(_ *ecs.ECS) {
		driver.Each(func(entry *donburi.Entry) {
			components.Track.Get(entry).Update(step)
		})
	}
}
