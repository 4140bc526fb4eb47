package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/dungenlab/dungen/pkg/dungeon"
)

// fileConfig mirrors the TOML configuration file layout:
//
//	seed = 42
//
//	[generation]
//	min_room_size = 4
//	max_room_size = 8
//	room_spread = 3
//	cells_x = 4
//	cells_z = 4
type fileConfig struct {
	Seed       int64          `toml:"seed"`
	Generation dungeon.Config `toml:"generation"`
}

// loadConfigFile reads generation parameters from a TOML file. Missing
// keys keep their defaults.
func loadConfigFile(path string) (fileConfig, error) {
	fc := fileConfig{Generation: dungeon.DefaultConfig()}
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return fc, nil
}

// configFlags binds the generation parameters shared by the generate,
// render, and preview commands.
type configFlags struct {
	configPath string
	minRoom    int
	maxRoom    int
	spread     int
	cellsX     int
	cellsZ     int

	// fileSeed holds the seed from the config file, captured by resolve.
	fileSeed int64
}

// register adds the configuration flags to cmd.
func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().IntVar(&f.minRoom, "min-room-size", 0, "minimum room dimension (inclusive)")
	cmd.Flags().IntVar(&f.maxRoom, "max-room-size", 0, "maximum room dimension (exclusive)")
	cmd.Flags().IntVar(&f.spread, "room-spread", -1, "per-cell slack beyond the largest room")
	cmd.Flags().IntVar(&f.cellsX, "cells-x", 0, "partition cells along the x axis")
	cmd.Flags().IntVar(&f.cellsZ, "cells-z", 0, "partition cells along the z axis")
}

// resolve builds the effective configuration: defaults, overridden by
// the config file, overridden by explicit flags.
func (f *configFlags) resolve() (dungeon.Config, error) {
	cfg := dungeon.DefaultConfig()
	if f.configPath != "" {
		loaded, err := loadConfigFile(f.configPath)
		if err != nil {
			return dungeon.Config{}, err
		}
		cfg = loaded.Generation
		f.fileSeed = loaded.Seed
	}
	if f.minRoom > 0 {
		cfg.MinRoomSize = f.minRoom
	}
	if f.maxRoom > 0 {
		cfg.MaxRoomSize = f.maxRoom
	}
	if f.spread >= 0 {
		cfg.RoomSpread = f.spread
	}
	if f.cellsX > 0 {
		cfg.CellsX = f.cellsX
	}
	if f.cellsZ > 0 {
		cfg.CellsZ = f.cellsZ
	}
	return cfg, cfg.Validate()
}

// effectiveSeed applies seed precedence: the --seed flag, then the
// config file's seed, then zero (pipeline default). Valid only after
// resolve has run.
func (f *configFlags) effectiveSeed(flagSeed int64) int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return f.fileSeed
}
