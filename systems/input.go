package systems

import (
	"github.com/automoto/tankarena/arena"
	"github.com/automoto/tankarena/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi/ecs"
)

// NewMoveInputSystem returns an ECS system that turns a click or tap into a
// move request for the local tank. A marker is placed only when the request
// was actually sent.
func NewMoveInputSystem(driver *arena.Driver, log *logrus.Logger) func(*ecs.ECS) {
	var touches []ebiten.TouchID
	return func(e *ecs.ECS) {
		var taps []gamemath.Point
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			taps = append(taps, gamemath.Pt(float64(x), float64(y)))
		}
		touches = inpututil.AppendJustPressedTouchIDs(touches[:0])
		for _, id := range touches {
			x, y := ebiten.TouchPosition(id)
			taps = append(taps, gamemath.Pt(float64(x), float64(y)))
		}

		for _, p := range taps {
			sent, err := driver.RequestMove(p)
			if err != nil {
				log.WithError(err).Warn("move request failed")
				continue
			}
			if sent {
				SpawnMarker(e.World, p)
			}
		}
	}
}
