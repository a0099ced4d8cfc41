package main

import (
	"log/slog"

	"github.com/younwookim/squarerun/internal/application/scene"
	"github.com/younwookim/squarerun/internal/application/scene/menu"
	"github.com/younwookim/squarerun/internal/application/scene/settings"
	"github.com/younwookim/squarerun/internal/application/scene/splash"
	"github.com/younwookim/squarerun/internal/application/stack"
	"github.com/younwookim/squarerun/internal/application/system"
	"github.com/younwookim/squarerun/internal/application/transition"
	"github.com/younwookim/squarerun/internal/application/ui"
	"github.com/younwookim/squarerun/internal/infrastructure/audio"
	"github.com/younwookim/squarerun/internal/infrastructure/config"
	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

// musicFactory creates a fresh menu track, or nil when audio is off
type musicFactory func() *audio.Music

// app wires the scene stack, the UI layer and the scenes together
type app struct {
	cfg      *config.GameConfig
	logger   *slog.Logger
	ui       *ui.Manager
	stack    *stack.Stack
	newMusic musicFactory

	// volume outlives the menus so a setting survives PLAY and back
	volume float64
}

func newApp(cfg *config.GameConfig, input system.InputSource, newMusic musicFactory, logger *slog.Logger) *app {
	manager := ui.NewManager(input, cfg.Window.Width, cfg.Window.Height)
	tr := transition.New(
		render.NewCamera(cfg.Scene.Width, cfg.Scene.Height),
		transition.WithSpeed(cfg.Transition.Speed),
		transition.WithLogger(logger),
	)
	return &app{
		cfg:      cfg,
		logger:   logger,
		ui:       manager,
		stack:    stack.New(tr, stack.WithUI(manager), stack.WithLogger(logger)),
		newMusic: newMusic,
		volume:   cfg.Audio.Volume,
	}
}

// start queues the splash screen as the first scene
func (a *app) start() {
	a.stack.Switch(a.newSplash("SQUARE RUN", "a scene stack demo"), a.cfg.Transition.SwitchSpeed)
}

func (a *app) newSplash(title, subtitle string) scene.Scene {
	return splash.New(a.stack, a.newMenu, splash.Options{
		Title:    title,
		Subtitle: subtitle,
		Duration: a.cfg.Splash.Duration,
		Speed:    a.cfg.Transition.SwitchSpeed,
		Width:    a.cfg.Scene.Width,
		Height:   a.cfg.Scene.Height,
	})
}

func (a *app) newMenu() scene.Scene {
	opts := menu.Options{
		Width:     a.cfg.Scene.Width,
		Height:    a.cfg.Scene.Height,
		PlaySpeed: a.cfg.Transition.SwitchSpeed,
		Play: func() scene.Scene {
			return a.newSplash("GET READY", "")
		},
	}

	// typed nils must not reach the scenes as non-nil interfaces
	var volume settings.Volume
	if a.newMusic != nil {
		if m := a.newMusic(); m != nil {
			m.SetVolume(a.volume)
			opts.Music = m
			volume = &appVolume{app: a, music: m}
		}
	}
	opts.Settings = func() scene.Scene {
		return settings.New(a.stack, a.ui, volume, a.cfg.Scene.Width, a.cfg.Scene.Height)
	}

	return menu.New(a.stack, a.ui, opts)
}

// appVolume adjusts a menu track and remembers the level for later menus
type appVolume struct {
	app   *app
	music *audio.Music
}

func (v *appVolume) Volume() float64 {
	return v.music.Volume()
}

func (v *appVolume) SetVolume(volume float64) {
	v.music.SetVolume(volume)
	v.app.volume = v.music.Volume()
}
