package scenes

import (
	"sync"

	"github.com/automoto/tankarena/arena"
	cfg "github.com/automoto/tankarena/config"
	"github.com/automoto/tankarena/network"
	"github.com/automoto/tankarena/shared/messages"
	"github.com/automoto/tankarena/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	LayerGround ecs.LayerID = iota
	LayerTanks
	LayerHUD
)

// BattleScene shows the shared battlefield. Server messages are drained from
// the client inbox at the start of every update, so all tank state is touched
// from the game loop only.
type BattleScene struct {
	ecs    *ecs.ECS
	client *network.Client
	driver *arena.Driver
	log    *logrus.Logger
	opts   []arena.DriverOption
	once   sync.Once
	lost   bool
}

func NewBattleScene(client *network.Client, log *logrus.Logger, opts ...arena.DriverOption) *BattleScene {
	return &BattleScene{
		client: client,
		log:    log,
		opts:   opts,
	}
}

func (bs *BattleScene) configure() {
	world := donburi.NewWorld()
	bs.ecs = ecs.NewECS(world)
	bs.driver = arena.NewDriver(world, bs.client, bs.log, bs.opts...)

	step := 1 / float64(cfg.C.TPS)
	bs.ecs.AddSystem(systems.NewMoveInputSystem(bs.driver, bs.log))
	bs.ecs.AddSystem(systems.NewMotionSystem(bs.driver, step))
	bs.ecs.AddSystem(systems.NewTrackSystem(bs.driver, step))
	bs.ecs.AddSystem(systems.NewMarkerSystem(step))
	bs.ecs.AddRenderer(LayerGround, systems.DrawMarkers)
	bs.ecs.AddRenderer(LayerTanks, systems.DrawTanks)
	bs.ecs.AddRenderer(LayerHUD, systems.NewHUDRenderer(bs.client, bs.driver))
}

func (bs *BattleScene) Update() {
	bs.once.Do(bs.configure)

	switch state := bs.client.State(); state {
	case network.StateDisconnected, network.StateError:
		if !bs.lost {
			bs.log.WithField("state", state).WithError(bs.client.LastError()).Warn("lost connection to battle server")
			bs.lost = true
		}
	default:
		bs.lost = false
	}

	bs.client.Drain(bs.handle)
	bs.ecs.Update()
}

func (bs *BattleScene) handle(msg any) {
	if _, ok := msg.(messages.JoinAccepted); ok {
		if err := bs.driver.Enter(); err != nil {
			bs.log.WithError(err).Error("failed to enter battle")
		}
		return
	}
	// Rejections are already logged by the driver.
	_ = bs.driver.Dispatch(msg)
}

func (bs *BattleScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.Background)
	if bs.ecs == nil {
		return
	}
	bs.ecs.Draw(screen)
}
