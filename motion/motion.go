// Package motion interpolates a single tank between server move commands.
//
// A command turns the tank in place until it faces its destination heading and
// then drives it in a straight line. The machine is advanced with Step using the
// frame's time delta and snaps to the authoritative values when a phase ends.
package motion

import (
	"github.com/automoto/tankarena/shared/gamemath"
	"github.com/automoto/tankarena/shared/netconfig"
)

// State is the phase a Machine is in.
type State int

const (
	Idle State = iota
	Rotating
	Moving
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rotating:
		return "rotating"
	case Moving:
		return "moving"
	}
	return "unknown"
}

// Pose is where a tank is and which way it faces (degrees, clockwise).
type Pose struct {
	Position gamemath.Point
	Rotation float64
}

// Command is a server-issued trajectory.
type Command struct {
	Begin        gamemath.Point
	Dest         gamemath.Point
	DestR        float64
	Dist         float64
	Dir          netconfig.Direction
	Speed        float64
	RotateSpeed  float64
	RotateOffset float64
	Rotation     float64
}

// Animator is the presentation side of a tank. Its loop animation runs while
// the tank has a trajectory in flight. Implementations carry no motion state.
type Animator interface {
	StartLoop()
	StopLoop()
}

type rotatePhase struct {
	remaining float64 // degrees still owed
	dest      float64
	speed     float64
	dir       netconfig.Direction
}

type travelPhase struct {
	begin     gamemath.Point
	remaining float64
	length    float64 // full path length, used for the final snap
	speed     float64
}

// Machine is the motion state of one tank. The zero value is an idle tank at
// the origin facing 0 degrees.
type Machine struct {
	state  State
	pose   Pose
	dest   gamemath.Point
	rotate rotatePhase
	travel travelPhase
}

// New returns an idle machine at the given pose.
func New(pose Pose) Machine {
	return Machine{pose: pose}
}

// Move replaces whatever trajectory is in flight with cmd. The pose snaps to
// the command's begin point and rotation immediately.
func (m *Machine) Move(cmd Command, anim Animator) {
	if anim != nil {
		anim.StopLoop()
		anim.StartLoop()
	}

	m.dest = cmd.Dest
	m.rotate = rotatePhase{
		remaining: cmd.RotateOffset,
		dest:      cmd.DestR,
		speed:     cmd.RotateSpeed,
		dir:       cmd.Dir,
	}
	m.travel = travelPhase{
		begin:     cmd.Begin,
		remaining: cmd.Dist,
		length:    cmd.Dist,
		speed:     cmd.Speed,
	}
	m.pose = Pose{Position: cmd.Begin, Rotation: cmd.Rotation}

	if cmd.RotateOffset > 0 {
		m.state = Rotating
	} else {
		m.state = Moving
	}
}

// Step advances the machine by dt seconds. A dt that is not positive,
// including NaN, is ignored.
// A phase that runs out during a step ends on that step; any time left over is
// not carried into the next phase.
func (m *Machine) Step(dt float64, anim Animator) {
	if !(dt > 0) {
		return
	}

	switch m.state {
	case Rotating:
		m.stepRotate(dt)
	case Moving:
		m.stepTravel(dt, anim)
	}
}

func (m *Machine) stepRotate(dt float64) {
	offset := m.rotate.speed * dt
	m.pose.Rotation += m.rotate.dir.Sign() * offset
	m.rotate.remaining -= offset

	if m.rotate.remaining <= 0 {
		m.pose.Rotation = m.rotate.dest
		m.state = Moving
	}
}

func (m *Machine) stepTravel(dt float64, anim Animator) {
	heading := gamemath.DegreesToRadians(m.pose.Rotation)
	offset := m.travel.speed * dt
	m.travel.remaining -= offset

	if m.travel.remaining <= 0 {
		m.state = Idle
		m.pose.Position = gamemath.PointOnCircle(m.travel.begin, m.travel.length, heading)
		if anim != nil {
			anim.StopLoop()
		}
		return
	}

	m.pose.Position = gamemath.PointOnCircle(m.pose.Position, offset, heading)
}

// SetPose overwrites the pose without touching the current phase. Used for
// authoritative idle updates.
func (m *Machine) SetPose(p Pose) {
	m.pose = p
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) Pose() Pose {
	return m.pose
}

// Destination is the destination point of the last command. It is not used
// for the final snap; the renderer draws it as the local tank's heading target.
func (m *Machine) Destination() gamemath.Point {
	return m.dest
}

// RemainingRotation returns the degrees still owed while rotating, else 0.
func (m *Machine) RemainingRotation() float64 {
	if m.state != Rotating {
		return 0
	}
	return m.rotate.remaining
}

// RemainingDistance returns the path length left in the current trajectory,
// or 0 when idle.
func (m *Machine) RemainingDistance() float64 {
	if m.state == Idle {
		return 0
	}
	return m.travel.remaining
}
