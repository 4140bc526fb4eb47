package pipeline

import (
	"context"
	"testing"

	"github.com/dungenlab/dungen/pkg/cache"
	"github.com/dungenlab/dungen/pkg/dungeon"
)

func testOptions() Options {
	return Options{
		Config: dungeon.Config{MinRoomSize: 3, MaxRoomSize: 5, RoomSpread: 2, CellsX: 2, CellsZ: 2},
		Seed:   7,
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Config != dungeon.DefaultConfig() {
		t.Errorf("empty config should default, got %+v", opts.Config)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.TTL != DefaultTTL {
		t.Errorf("TTL = %v, want %v", opts.TTL, DefaultTTL)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsRejectInvalidConfig(t *testing.T) {
	opts := Options{Config: dungeon.Config{MinRoomSize: 5, MaxRoomSize: 5, CellsX: 1, CellsZ: 1}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Fatal("expected validation error for degenerate room bounds")
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatASCII, FormatDOT, FormatSVG, FormatPNG, FormatJSON} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("bmp"); err == nil {
		t.Error("ValidateFormat(bmp) should fail")
	}
}

func TestRunnerGenerate(t *testing.T) {
	r := NewRunner(nil, nil, nil) // null cache, default keyer
	result, err := r.Generate(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if result.Plan == nil {
		t.Fatal("nil plan")
	}
	if result.Stats.Rooms != 4 {
		t.Errorf("Rooms = %d, want 4", result.Stats.Rooms)
	}
	if result.Stats.Connections != 4 {
		t.Errorf("Connections = %d, want 4 (2 north-south + 2 east-west)", result.Stats.Connections)
	}
	if result.Stats.Unconnected != 0 {
		t.Errorf("Unconnected = %d, want 0", result.Stats.Unconnected)
	}
	if result.PlanHash == "" {
		t.Error("empty plan hash")
	}
	if result.CacheInfo.PlanHit {
		t.Error("first run should not be a cache hit")
	}
}

func TestRunnerGenerateCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	r := NewRunner(c, nil, nil)

	first, err := r.Generate(ctx, testOptions())
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	if first.CacheInfo.PlanHit {
		t.Error("first run hit the cache")
	}

	second, err := r.Generate(ctx, testOptions())
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if !second.CacheInfo.PlanHit {
		t.Error("second run should hit the cache")
	}
	if second.PlanHash != first.PlanHash {
		t.Errorf("cached PlanHash %s differs from fresh %s", second.PlanHash, first.PlanHash)
	}

	// Refresh bypasses the cache but reproduces the same plan.
	opts := testOptions()
	opts.Refresh = true
	third, err := r.Generate(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Generate: %v", err)
	}
	if third.CacheInfo.PlanHit {
		t.Error("refresh run must not hit the cache")
	}
	if third.PlanHash != first.PlanHash {
		t.Error("deterministic generation should reproduce the plan hash")
	}
}

func TestRunnerCachedArtifact(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	r := NewRunner(c, nil, nil)

	calls := 0
	render := func() ([]byte, error) {
		calls++
		return []byte("<svg/>"), nil
	}

	data, hit, err := r.CachedArtifact(ctx, "planhash", FormatSVG, 0, render)
	if err != nil {
		t.Fatalf("CachedArtifact: %v", err)
	}
	if hit || string(data) != "<svg/>" || calls != 1 {
		t.Errorf("first call: hit=%v data=%q calls=%d", hit, data, calls)
	}

	data, hit, err = r.CachedArtifact(ctx, "planhash", FormatSVG, 0, render)
	if err != nil {
		t.Fatalf("CachedArtifact: %v", err)
	}
	if !hit || string(data) != "<svg/>" || calls != 1 {
		t.Errorf("second call: hit=%v data=%q calls=%d (render should not rerun)", hit, data, calls)
	}

	if _, _, err := r.CachedArtifact(ctx, "planhash", "bmp", 0, render); err == nil {
		t.Error("invalid format should error")
	}
}
