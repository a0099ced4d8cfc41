package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// GameConfig is the root of configs.json / configs.yaml.
// Every field can be overridden from the environment with the SQUARERUN_ prefix,
// e.g. SQUARERUN_WINDOW_WIDTH or SQUARERUN_TRANSITION_SPEED.
type GameConfig struct {
	Window     WindowConfig     `json:"window" yaml:"window" envPrefix:"WINDOW_"`
	Scene      SceneConfig      `json:"scene" yaml:"scene" envPrefix:"SCENE_"`
	Transition TransitionConfig `json:"transition" yaml:"transition" envPrefix:"TRANSITION_"`
	Splash     SplashConfig     `json:"splash" yaml:"splash" envPrefix:"SPLASH_"`
	Audio      AudioConfig      `json:"audio" yaml:"audio" envPrefix:"AUDIO_"`
	Log        LogConfig        `json:"log" yaml:"log" envPrefix:"LOG_"`
	TickRate   int              `json:"tickRate" yaml:"tickRate" env:"TICK_RATE"`
}

// WindowConfig configures the OS window
type WindowConfig struct {
	Title      string `json:"title" yaml:"title" env:"TITLE"`
	Width      int    `json:"width" yaml:"width" env:"WIDTH"`
	Height     int    `json:"height" yaml:"height" env:"HEIGHT"`
	Fullscreen bool   `json:"fullscreen" yaml:"fullscreen" env:"FULLSCREEN"`
	Resizable  bool   `json:"resizable" yaml:"resizable" env:"RESIZABLE"`
	Vsync      bool   `json:"vsync" yaml:"vsync" env:"VSYNC"`
}

// SceneConfig is the size of the scene camera view, in scene units
type SceneConfig struct {
	Width  float64 `json:"width" yaml:"width" env:"WIDTH"`
	Height float64 `json:"height" yaml:"height" env:"HEIGHT"`
}

// TransitionConfig sets curtain speeds in scene units per second
type TransitionConfig struct {
	Speed       float64 `json:"speed" yaml:"speed" env:"SPEED"`
	SwitchSpeed float64 `json:"switchSpeed" yaml:"switchSpeed" env:"SWITCH_SPEED"`
}

type SplashConfig struct {
	Duration float64 `json:"duration" yaml:"duration" env:"DURATION"` // seconds
}

type AudioConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled" env:"ENABLED"`
	Volume  float64 `json:"volume" yaml:"volume" env:"VOLUME"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level" env:"LEVEL"` // debug, info, warn, error
}

// Default returns the configuration written by WriteDefault
func Default() *GameConfig {
	return &GameConfig{
		Window: WindowConfig{
			Title:  "Square Run",
			Width:  1600,
			Height: 900,
		},
		Scene: SceneConfig{
			Width:  1600,
			Height: 900,
		},
		Transition: TransitionConfig{
			Speed:       1000,
			SwitchSpeed: 3000,
		},
		Splash: SplashConfig{Duration: 2},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Log:      LogConfig{Level: "info"},
		TickRate: 60,
	}
}

// Validate reports every out-of-range value
func (c *GameConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Scene.Width <= 0 || c.Scene.Height <= 0 {
		errs = append(errs, fmt.Errorf("scene size must be positive, got %gx%g", c.Scene.Width, c.Scene.Height))
	}
	if c.Transition.Speed <= 0 {
		errs = append(errs, fmt.Errorf("transition speed must be positive, got %g", c.Transition.Speed))
	}
	if c.Transition.SwitchSpeed <= 0 {
		errs = append(errs, fmt.Errorf("transition switchSpeed must be positive, got %g", c.Transition.SwitchSpeed))
	}
	if c.Splash.Duration < 0 {
		errs = append(errs, fmt.Errorf("splash duration must not be negative, got %g", c.Splash.Duration))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume must be within 0..1, got %g", c.Audio.Volume))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tickRate must be positive, got %d", c.TickRate))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses Level. An empty level means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", l.Level)
	}
	return lvl, nil
}
