package arena

import (
	"errors"
	"fmt"

	"github.com/automoto/tankarena/components"
	"github.com/automoto/tankarena/motion"
	"github.com/automoto/tankarena/shared/gamemath"
	"github.com/automoto/tankarena/shared/messages"
	"github.com/automoto/tankarena/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// ErrUnknownMessage is returned by Dispatch for message types the driver does
// not handle.
var ErrUnknownMessage = errors.New("unknown message type")

// Transport delivers outbound messages and knows which uid this client
// controls.
type Transport interface {
	LocalUID() esync.NetworkId
	Send(msg any) error
}

// Driver binds inbound battle messages to tank state and runs the per-frame
// motion step. All methods must be called from the update loop.
type Driver struct {
	registry  *Registry
	transport Transport
	log       *logrus.Logger
	anomaly   func(error)
}

type DriverOption func(*Driver)

// WithAnomalyReporter installs fn to receive malformed or unknown inbound
// messages in addition to the log.
func WithAnomalyReporter(fn func(error)) DriverOption {
	return func(d *Driver) {
		d.anomaly = fn
	}
}

func NewDriver(world donburi.World, transport Transport, log *logrus.Logger, opts ...DriverOption) *Driver {
	d := &Driver{
		transport: transport,
		log:       log,
	}
	d.registry = NewRegistry(world, transport.LocalUID, log)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Registry() *Registry {
	return d.registry
}

// Enter announces this client to the battle.
func (d *Driver) Enter() error {
	if err := d.transport.Send(messages.BattleEnter{}); err != nil {
		return fmt.Errorf("%s: %w", netconfig.MsgBattleEnter, err)
	}
	return nil
}

func (d *Driver) OnEnter(msg messages.TankEnter) {
	d.OnIdle(messages.TankIdle(msg))
}

// OnIdle shows the tank and snaps it to the authoritative pose.
func (d *Driver) OnIdle(msg messages.TankIdle) {
	entry := d.registry.Resolve(msg.UID, msg.Color)
	components.Tank.Get(entry).Visible = true
	components.Motion.Get(entry).SetPose(motion.Pose{
		Position: gamemath.Pt(msg.X, msg.Y),
		Rotation: msg.Rotation,
	})
}

// OnMove starts a new trajectory for a known tank.
func (d *Driver) OnMove(msg messages.TankMove) {
	entry, ok := d.registry.Lookup(msg.UID)
	if !ok {
		d.log.WithField("uid", msg.UID).Debug("move for unknown tank ignored")
		return
	}
	components.Motion.Get(entry).Move(commandFromMessage(msg), components.Track.Get(entry))
}

func (d *Driver) OnRemove(msg messages.TankRemove) {
	if !d.registry.Remove(msg.UID) {
		d.log.WithField("uid", msg.UID).Debug("remove for unknown tank ignored")
	}
}

// Tick advances every tank by dt seconds.
func (d *Driver) Tick(dt float64) {
	d.registry.Each(func(entry *donburi.Entry) {
		components.Motion.Get(entry).Step(dt, components.Track.Get(entry))
	})
}

// RequestMove asks the server to drive the local tank to dest. It reports
// false without sending when the local tank is unknown or not yet visible.
func (d *Driver) RequestMove(dest gamemath.Point) (bool, error) {
	entry, ok := d.registry.Local()
	if !ok || !components.Tank.Get(entry).Visible {
		return false, nil
	}

	pose := components.Motion.Get(entry).Pose()
	req := messages.MoveRequest{
		X:        pose.Position.X,
		Y:        pose.Position.Y,
		Rotation: pose.Rotation,
		DestX:    dest.X,
		DestY:    dest.Y,
	}
	if err := d.transport.Send(req); err != nil {
		return false, fmt.Errorf("%s: %w", netconfig.MsgBattleMove, err)
	}
	return true, nil
}

type validator interface {
	Validate() error
}

// Dispatch validates a decoded inbound message and routes it to its handler.
// Malformed and unknown messages are logged, reported and returned; they never
// reach tank state.
func (d *Driver) Dispatch(msg any) error {
	if v, ok := msg.(validator); ok {
		if err := v.Validate(); err != nil {
			return d.reject(err)
		}
	}

	switch m := msg.(type) {
	case messages.TankEnter:
		d.OnEnter(m)
	case messages.TankIdle:
		d.OnIdle(m)
	case messages.TankMove:
		d.OnMove(m)
	case messages.TankRemove:
		d.OnRemove(m)
	default:
		return d.reject(fmt.Errorf("%T: %w", msg, ErrUnknownMessage))
	}
	return nil
}

func (d *Driver) reject(err error) error {
	d.log.WithError(err).Warn("inbound message rejected")
	if d.anomaly != nil {
		d.anomaly(err)
	}
	return err
}

func commandFromMessage(m messages.TankMove) motion.Command {
	return motion.Command{
		Begin:        gamemath.Pt(m.X, m.Y),
		Dest:         gamemath.Pt(m.DestX, m.DestY),
		DestR:        m.DestR,
		Dist:         m.Dist,
		Dir:          m.Dir,
		Speed:        m.Speed,
		RotateSpeed:  m.RotateSpeed,
		RotateOffset: m.RotateOffset,
		Rotation:     m.Rotation,
	}
}

// Local returns the tank controlled by this client, if it has been seen.
func (d *Driver) Local() (*donburi.Entry, bool) {
	return d.registry.Local()
}

func (d *Driver) Len() int {
	return d.registry.Len()
}

func (d *Driver) Each(fn func(*donburi.Entry)) {
	d.registry.Each(fn)
}
