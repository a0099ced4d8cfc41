package main

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/younwookim/squarerun/internal/infrastructure/config"
)

var rootCmd = &cobra.Command{
	Use:           "squarerun",
	Short:         "Square Run, a scene-stack arcade game",
	Long:          `Square Run opens on a splash screen and a main menu driven by a scene stack with animated transitions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (.json or .yaml); embedded defaults when empty")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")
}

// loadConfig reads the --config file, or the embedded defaults when none is given
func loadConfig(cmd *cobra.Command) (*config.GameConfig, error) {
	path, _ := cmd.Flags().GetString("config")

	var loader *config.Loader
	name := config.DefaultFile
	if path == "" {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			return nil, fmt.Errorf("failed to get config subfs: %w", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
	} else {
		loader = config.NewLoader(filepath.Dir(path))
		name = filepath.Base(path)
	}

	cfg, err := loader.Load(name)
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger builds the text logger every package logs through
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
