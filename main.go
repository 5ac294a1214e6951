package main

import (
	"image"
	"os"
	"time"

	"github.com/automoto/tankarena/arena"
	"github.com/automoto/tankarena/config"
	"github.com/automoto/tankarena/fonts"
	"github.com/automoto/tankarena/network"
	"github.com/automoto/tankarena/scenes"
	"github.com/automoto/tankarena/shared/messages"
	"github.com/automoto/tankarena/systems"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	log := logrus.New()

	if err := systems.InitPersistence(); err != nil {
		log.WithError(err).Warn("could not initialize persistence")
	}
	saved, err := systems.LoadSettings()
	if err != nil {
		log.WithError(err).Warn("could not load saved settings")
	}
	saved = systems.ApplySavedSettings(saved)

	if err := config.ParseFlags(os.Args[1:]); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if level, err := logrus.ParseLevel(config.Debug.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", config.Debug.LogLevel).Warn("unknown log level, keeping info")
	}
	if err := systems.RememberSettings(saved); err != nil {
		log.WithError(err).Warn("could not save settings")
	}

	var opts []arena.DriverOption
	if config.Net.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:     config.Net.SentryDSN,
			Release: "tankarena@" + config.Net.Version,
		}); err != nil {
			log.WithError(err).Warn("sentry disabled")
		} else {
			defer sentry.Flush(2 * time.Second)
			opts = append(opts, arena.WithAnomalyReporter(func(err error) {
				sentry.CaptureException(err)
			}))
		}
	}

	if config.Debug.Stats {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(config.Debug.StatsAddr))
		mgr := statsview.New()
		go mgr.Start()
		log.WithField("addr", config.Debug.StatsAddr).Info("runtime stats enabled")
	}

	if err := fonts.LoadDefaults(); err != nil {
		log.WithError(err).Fatal("could not load fonts")
	}

	client := network.NewClient(log, config.Net.InboxSize)
	client.Connect(config.Net.ServerAddress, messages.JoinRequest{
		Version:    config.Net.Version,
		PlayerName: config.Net.PlayerName,
		ClientID:   saved.ClientID,
	})
	defer client.Disconnect()

	ebiten.SetTPS(config.C.TPS)
	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)

	game := &Game{scene: scenes.NewBattleScene(client, log, opts...)}
	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Error("game exited")
	}
}
