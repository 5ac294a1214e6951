package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/tankarena/arena"
	"github.com/automoto/tankarena/components"
	cfg "github.com/automoto/tankarena/config"
	"github.com/automoto/tankarena/fonts"
	"github.com/automoto/tankarena/motion"
	"github.com/automoto/tankarena/network"
	"github.com/automoto/tankarena/shared/gamemath"
	"github.com/automoto/tankarena/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

var (
	bodyImage   *ebiten.Image
	treadColor  = color.RGBA{R: 40, G: 36, B: 32, A: 255}
	barrelColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
)

func body() *ebiten.Image {
	if bodyImage == nil {
		bodyImage = ebiten.NewImage(int(cfg.Tank.BodyWidth), int(cfg.Tank.BodyHeight))
		bodyImage.Fill(color.White)
	}
	return bodyImage
}

// local maps a point given in the tank's frame (forward, right) to the screen.
func local(center gamemath.Point, heading, forward, right float64) gamemath.Point {
	f := gamemath.PointOnCircle(center, forward, heading)
	return gamemath.PointOnCircle(f, right, heading-gamemath.DegreesToRadians(90))
}

var (
	tankQuery  = donburi.NewQuery(filter.Contains(tags.Tank))
	localQuery = donburi.NewQuery(filter.Contains(tags.LocalTank))
)

// DrawTanks draws every visible tank: a tinted body, tread marks that scroll
// while the loop runs and a barrel along the heading. The local tank also gets
// an outline and, while it is driving, a line to where it is headed.
func DrawTanks(e *ecs.ECS, screen *ebiten.Image) {
	tankQuery.Each(e.World, func(entry *donburi.Entry) {
		tank := components.Tank.Get(entry)
		if !tank.Visible {
			return
		}
		pose := components.Motion.Get(entry).Pose()
		drawTank(screen, tank.Kind, pose.Position, gamemath.DegreesToRadians(pose.Rotation),
			components.Track.Get(entry).Frame())
	})

	localQuery.Each(e.World, func(entry *donburi.Entry) {
		if !components.Tank.Get(entry).Visible {
			return
		}
		m := components.Motion.Get(entry)
		at := m.Pose().Position
		w := float32(cfg.Tank.BodyWidth)
		vector.StrokeCircle(screen, float32(at.X), float32(at.Y), w*0.75, 1.5, cfg.Tank.LocalOutline, true)

		if m.State() != motion.Idle {
			dest := m.Destination()
			vector.StrokeLine(screen, float32(at.X), float32(at.Y), float32(dest.X), float32(dest.Y), 1, cfg.Tank.LocalOutline, true)
			vector.StrokeCircle(screen, float32(dest.X), float32(dest.Y), 3, 1, cfg.Tank.LocalOutline, true)
		}
	})
}

func drawTank(screen *ebiten.Image, kind string, at gamemath.Point, heading float64, frame int) {
	w, h := cfg.Tank.BodyWidth, cfg.Tank.BodyHeight

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	// Screen rotation runs clockwise with y down, the heading counterclockwise.
	op.GeoM.Rotate(-heading)
	op.GeoM.Translate(at.X, at.Y)
	op.ColorScale.ScaleWithColor(cfg.KindColor(kind))
	screen.DrawImage(body(), op)

	frames := cfg.Tank.TrackFrames
	if frames < 1 {
		frames = 1
	}
	spacing := w / 4
	shift := spacing * float64(frame%frames) / float64(frames)
	for i := 0; i < 4; i++ {
		forward := -w/2 + shift + spacing*float64(i)
		for _, side := range []float64{-h / 2, h/2 - 3} {
			p := local(at, heading, forward, side+1.5)
			vector.DrawFilledRect(screen, float32(p.X-1.5), float32(p.Y-1.5), 3, 3, treadColor, false)
		}
	}

	tip := gamemath.PointOnCircle(at, w*0.8, heading)
	vector.StrokeLine(screen, float32(at.X), float32(at.Y), float32(tip.X), float32(tip.Y), 4, barrelColor, true)
}

// NewHUDRenderer draws the connection state, tank count and the uid this
// client controls.
func NewHUDRenderer(client *network.Client, driver *arena.Driver) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		if !cfg.Debug.ShowHUD {
			return
		}
		face := fonts.Regular.Get()
		status := client.State().String()
		if name := client.ServerName(); name != "" {
			status = fmt.Sprintf("%s to %s", status, name)
		}
		text.Draw(screen, status, face, 8, 18, cfg.White)
		text.Draw(screen, fmt.Sprintf("tanks: %d", driver.Len()), face, 8, 36, cfg.LightGreen)

		small := fonts.Small.Get()
		if uid := client.LocalUID(); uid != 0 {
			text.Draw(screen, fmt.Sprintf("you: #%d", uid), small, 8, 52, cfg.Yellow)
		}
		if err := client.LastError(); err != nil {
			text.Draw(screen, err.Error(), small, 8, cfg.C.Height-10, cfg.Yellow)
		}
	}
}

