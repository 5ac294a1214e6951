package animations

// Animation cycles through sprite-sheet frames [First, Last] on a fixed
// per-frame duration measured in seconds.
type Animation struct {
	First         int
	Last          int
	FrameDuration float64
	elapsed       float64
	frame         int
	Loops         int // completed cycles since the last Restart
}

func (a *Animation) Update(dt float64) {
	if a.FrameDuration <= 0 || dt <= 0 {
		return
	}
	a.elapsed += dt
	for a.elapsed >= a.FrameDuration {
		a.elapsed -= a.FrameDuration
		a.frame++
		if a.frame > a.Last {
			a.frame = a.First
			a.Loops++
		}
	}
}

func (a *Animation) Frame() int {
	return a.frame
}

func (a *Animation) Restart() {
	a.frame = a.First
	a.elapsed = 0
	a.Loops = 0
}

func NewAnimation(first, last int, frameDuration float64) *Animation {
	return &Animation{
		First:         first,
		Last:          last,
		FrameDuration: frameDuration,
		frame:         first,
	}
}
