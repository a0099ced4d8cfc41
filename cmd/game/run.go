package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/spf13/cobra"

	"github.com/younwookim/squarerun/internal/application/game"
	"github.com/younwookim/squarerun/internal/application/replay"
	"github.com/younwookim/squarerun/internal/application/system"
	"github.com/younwookim/squarerun/internal/infrastructure/audio"
	"github.com/younwookim/squarerun/internal/infrastructure/config"
	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the game",
	Long:  `Opens the game window and runs until the scene stack empties or the window closes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(os.Stderr, cfg.Log)

		recordFile, _ := cmd.Flags().GetString("record")
		replayFile, _ := cmd.Flags().GetString("replay")
		if recordFile != "" && replayFile != "" {
			return errors.New("--record and --replay cannot be used together")
		}

		return runGame(cfg, logger, recordFile, replayFile)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("record", "", "Record input to file (e.g., --record replay.json)")
	runCmd.Flags().String("replay", "", "Play back input recorded with --record")

	// 'run' is the default when no command is given
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}

func runGame(cfg *config.GameConfig, logger *slog.Logger, recordFile, replayFile string) error {
	var input system.InputSource = system.NewInputSystem()
	var recorder *replay.Recorder

	switch {
	case replayFile != "":
		data, err := replay.LoadReplay(replayFile)
		if err != nil {
			return err
		}
		input = replay.NewReplayer(*data)
		logger.Info("replaying input", "file", replayFile, "frames", len(data.Frames))
	case recordFile != "":
		recorder = replay.NewRecorder(input)
		input = recorder
		logger.Info("recording input", "file", recordFile)
	}

	var newMusic musicFactory
	if cfg.Audio.Enabled {
		ctx := ebitenaudio.NewContext(audio.SampleRate)
		intro, loop := audio.Melody()
		newMusic = func() *audio.Music {
			m, err := audio.NewToneMusic(ctx, intro, loop)
			if err != nil {
				logger.Warn("menu music disabled", "err", err)
				return nil
			}
			return m
		}
	}

	a := newApp(cfg, input, newMusic, logger)
	a.start()

	r, err := render.NewEbiten(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return err
	}
	g := game.New(a.stack, r, cfg.Window.Width, cfg.Window.Height,
		game.WithLogger(logger),
		game.WithTickRate(cfg.TickRate),
	)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	ebiten.SetVsyncEnabled(cfg.Window.Vsync)
	ebiten.SetTPS(cfg.TickRate)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	logger.Info("starting", "width", cfg.Window.Width, "height", cfg.Window.Height, "tps", cfg.TickRate)
	runErr := ebiten.RunGame(g)

	if recorder != nil {
		recorder.Stop()
		if err := recorder.Save(recordFile); err != nil {
			logger.Error("failed to save recording", "err", err)
		} else {
			logger.Info("recording saved", "file", recordFile, "frames", recorder.FrameCount())
		}
	}
	return runErr
}
