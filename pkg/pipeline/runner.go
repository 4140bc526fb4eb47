package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dungenlab/dungen/pkg/cache"
	"github.com/dungenlab/dungen/pkg/dungeon"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options, since each Generate call owns its
// working state.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Generate runs the validate → generate → snapshot pipeline with caching.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	start := time.Now()
	cacheKey := r.Keyer.PlanKey(opts.Config, opts.Seed)

	// Try cache first (unless refresh requested).
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var plan dungeon.FloorPlan
			if err := json.Unmarshal(data, &plan); err == nil {
				logger.Debug("plan cache hit", "key", cacheKey[:16])
				return r.buildResult(&plan, data, true, time.Since(start)), nil
			}
			// Corrupt entry: drop it and regenerate.
			_ = r.Cache.Delete(ctx, cacheKey)
		}
	}

	plan, err := dungeon.Generate(opts.Config, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	if err := r.Cache.Set(ctx, cacheKey, data, opts.TTL); err != nil {
		// Cache failures degrade to uncached operation.
		logger.Warn("plan cache write failed", "err", err)
	}

	result := r.buildResult(plan, data, false, time.Since(start))

	logger.Info("generated floor plan",
		"rooms", result.Stats.Rooms,
		"connections", result.Stats.Connections,
		"size", fmt.Sprintf("%dx%d", plan.Width, plan.Length),
		"seed", plan.Seed,
		"duration", result.Stats.GenerateTime)

	for _, pair := range plan.Unconnected {
		logger.Warn("adjacent rooms left unconnected", "a", pair.A, "b", pair.B)
	}

	return result, nil
}

// CachedArtifact returns the cached rendering of a plan in the given
// format, invoking render and caching its output on a miss. The cache
// key is derived from the plan hash, so any change to the plan or its
// inputs invalidates the artifact.
func (r *Runner) CachedArtifact(ctx context.Context, planHash, format string, ttl time.Duration, render func() ([]byte, error)) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(planHash, format)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	data, err := render()
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", format, err)
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("artifact cache write failed", "err", err)
	}
	return data, false, nil
}

// buildResult assembles a Result from a finished plan and its encoding.
func (r *Runner) buildResult(plan *dungeon.FloorPlan, encoded []byte, cacheHit bool, elapsed time.Duration) *Result {
	return &Result{
		Plan:     plan,
		PlanHash: cache.Hash(encoded),
		Stats: Stats{
			Rooms:        len(plan.Rooms),
			Connections:  len(plan.Graph.Edges()),
			Unconnected:  len(plan.Unconnected),
			FloorTiles:   plan.Tiles.FloorCount(),
			GenerateTime: elapsed,
		},
		CacheInfo: CacheInfo{PlanHit: cacheHit},
	}
}
