// Package pipeline provides the core generation pipeline for dungen.
//
// This package wraps the dungeon generator with option validation,
// caching, logging, and execution statistics so the CLI, TUI, and API
// all share one entry point and behave identically.
//
// # Architecture
//
// The pipeline is one ordered, synchronous pass:
//
//  1. Validate: check the generation configuration before any work
//  2. Generate: place rooms, carve corridors, build the room graph
//  3. Snapshot: hand off the immutable floor plan plus stats
//
// Generated plans are cached keyed by the full input (config + seed),
// so a cache hit is byte-identical to a fresh run.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Generate(ctx, pipeline.Options{
//	    Config: dungeon.DefaultConfig(),
//	    Seed:   42,
//	})
//	if err != nil {
//	    return err
//	}
//	plan := result.Plan
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dungenlab/dungen/pkg/dungeon"
)

// Default values shared by CLI, TUI, and API.
const (
	// DefaultSeed is the seed used when none is supplied, for
	// reproducible out-of-the-box runs.
	DefaultSeed = int64(42)

	// DefaultTTL is how long cached plans stay valid. Generation is
	// deterministic, so the TTL only bounds cache growth.
	DefaultTTL = 24 * time.Hour
)

// Format constants for rendered artifacts.
const (
	FormatASCII = "ascii"
	FormatDOT   = "dot"
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatJSON  = "json"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatASCII: true,
	FormatDOT:   true,
	FormatSVG:   true,
	FormatPNG:   true,
	FormatJSON:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: ascii, dot, svg, png, json)", format)
	}
	return nil
}

// Options contains all configuration for one pipeline run.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Config holds the generation parameters (room bounds, spread,
	// partition counts).
	Config dungeon.Config `json:"config"`

	// Seed drives the generation's random source. Zero selects
	// DefaultSeed; identical (Config, Seed) inputs reproduce the plan.
	Seed int64 `json:"seed,omitempty"`

	// Refresh bypasses the plan cache and regenerates.
	Refresh bool `json:"refresh,omitempty"`

	// TTL overrides the cache lifetime; zero selects DefaultTTL.
	TTL time.Duration `json:"-"`

	// Logger receives structured progress output. Nil discards.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == (dungeon.Config{}) {
		o.Config = dungeon.DefaultConfig()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the finished, immutable floor-plan snapshot.
	Plan *dungeon.FloorPlan

	// PlanHash is the content hash of the serialized plan, used as the
	// artifact cache key component.
	PlanHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the plan came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rooms        int
	Connections  int
	Unconnected  int
	FloorTiles   int
	GenerateTime time.Duration
}

// CacheInfo tracks cache hits for the pipeline stages.
type CacheInfo struct {
	PlanHit bool // Whether the plan came from cache
}
