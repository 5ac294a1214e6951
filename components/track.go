package components

import (
	"github.com/automoto/tankarena/assets/animations"
	"github.com/yohamta/donburi"
)

// TrackData drives the looping tread animation of a tank. It implements
// motion.Animator.
type TrackData struct {
	Anim    *animations.Animation
	Running bool
}

func NewTrackData(frames int, frameDuration float64) TrackData {
	return TrackData{Anim: animations.NewAnimation(0, frames-1, frameDuration)}
}

func (t *TrackData) StartLoop() {
	t.Running = true
	if t.Anim != nil {
		t.Anim.Restart()
	}
}

func (t *TrackData) StopLoop() {
	t.Running = false
}

// Update advances the loop by dt seconds while it is running.
func (t *TrackData) Update(dt float64) {
	if t.Running && t.Anim != nil {
		t.Anim.Update(dt)
	}
}

// Frame returns the current sheet index, or 0 without an animation.
func (t *TrackData) Frame() int {
	if t.Anim == nil {
		return 0
	}
	return t.Anim.Frame()
}

var Track = donburi.NewComponentType[TrackData]()
