// Package cli implements the dungen command-line interface.
//
// This package provides commands for generating procedural dungeon
// floor plans, rendering them as tile maps or connectivity diagrams,
// browsing the plan archive, and managing the generation cache. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Create a floor plan from a seed and configuration
//   - render: Produce ASCII, DOT, SVG, PNG, or JSON artifacts
//   - preview: Explore seeds interactively in the terminal
//   - plans: Browse and manage archived floor plans
//   - serve: Run the floor-plan HTTP API
//   - cache: Manage the generation cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dungenlab/dungen/pkg/buildinfo"
	"github.com/dungenlab/dungen/pkg/cache"
	"github.com/dungenlab/dungen/pkg/pipeline"
	"github.com/dungenlab/dungen/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "dungen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Dungen generates procedural dungeon floor plans",
		Long:         `Dungen is a CLI tool for generating procedural dungeon floor plans: grid-partitioned room placement, corridor carving via weighted-grid pathfinding, and a room connectivity graph, all reproducible from a seed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.plansCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore opens the plan archive: MongoDB when a URI is given,
// otherwise the local file archive.
func newStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI != "" {
		return store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
	}
	return store.NewFileStore("")
}

// cacheDir returns the cache directory using XDG standard (~/.cache/dungen/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
