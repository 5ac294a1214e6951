package messages

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/tankarena/shared/netconfig"
	"github.com/leap-fish/necs/esync"
)

// ErrMalformed is wrapped by every validation failure of an inbound message.
var ErrMalformed = errors.New("malformed message")

// TankEnter is broadcast when a tank joins the battle.
type TankEnter struct {
	UID      esync.NetworkId
	Color    string
	X, Y     float64
	Rotation float64 // degrees, clockwise
}

// TankIdle is an authoritative resting pose for a tank.
type TankIdle struct {
	UID      esync.NetworkId
	Color    string
	X, Y     float64
	Rotation float64
}

// TankMove starts a rotate-then-move trajectory. The server computes every
// field; the client only interpolates.
type TankMove struct {
	UID          esync.NetworkId
	X, Y         float64 // begin point
	DestX, DestY float64
	DestR        float64 // rotation once the turn completes
	Dist         float64 // path length
	Dir          netconfig.Direction
	Speed        float64 // distance per second
	RotateSpeed  float64 // degrees per second
	RotateOffset float64 // degrees left to turn before travelling
	Rotation     float64 // rotation at the begin point
}

// TankRemove is broadcast when a tank leaves the battle.
type TankRemove struct {
	UID esync.NetworkId
}

// MoveRequest asks the server to move the local tank toward a destination.
type MoveRequest struct {
	X, Y         float64
	Rotation     float64
	DestX, DestY float64
}

func (m TankEnter) Validate() error {
	return validatePose(netconfig.MsgEnter, m.UID, m.Color, m.X, m.Y, m.Rotation)
}

func (m TankIdle) Validate() error {
	return validatePose(netconfig.MsgIdle, m.UID, m.Color, m.X, m.Y, m.Rotation)
}

func (m TankMove) Validate() error {
	if m.UID == 0 {
		return malformed(netconfig.MsgMove, "missing uid")
	}
	if !allFinite(m.X, m.Y, m.DestX, m.DestY, m.DestR, m.Dist, m.Speed, m.RotateSpeed, m.RotateOffset, m.Rotation) {
		return malformed(netconfig.MsgMove, "non-finite field")
	}
	if !m.Dir.Valid() {
		return malformed(netconfig.MsgMove, fmt.Sprintf("unknown direction %q", m.Dir))
	}
	if m.Dist < 0 || m.RotateOffset < 0 || m.Speed < 0 || m.RotateSpeed < 0 {
		return malformed(netconfig.MsgMove, "negative distance or speed")
	}
	if m.Dist > 0 && m.Speed == 0 {
		return malformed(netconfig.MsgMove, "distance with zero speed")
	}
	if m.RotateOffset > 0 && m.RotateSpeed == 0 {
		return malformed(netconfig.MsgMove, "rotation with zero rotate speed")
	}
	return nil
}

func (m TankRemove) Validate() error {
	if m.UID == 0 {
		return malformed(netconfig.MsgRemove, "missing uid")
	}
	return nil
}

func validatePose(name string, uid esync.NetworkId, color string, x, y, rotation float64) error {
	if uid == 0 {
		return malformed(name, "missing uid")
	}
	if color == "" {
		return malformed(name, "missing color")
	}
	if !allFinite(x, y, rotation) {
		return malformed(name, "non-finite pose")
	}
	return nil
}

func malformed(name, reason string) error {
	return fmt.Errorf("%s: %s: %w", name, reason, ErrMalformed)
}

func allFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
