package components

import (
	"github.com/automoto/tankarena/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// MarkerData is the fading cross drawn where the local player last asked to
// drive.
type MarkerData struct {
	At    gamemath.Point
	Fade  *gween.Tween
	Alpha float32
}

// Update advances the fade by dt seconds and reports whether it finished.
func (m *MarkerData) Update(dt float64) bool {
	if m.Fade == nil {
		return true
	}
	alpha, done := m.Fade.Update(float32(dt))
	m.Alpha = alpha
	return done
}

var Marker = donburi.NewComponentType[MarkerData]()
