// Package store provides persistent archives of generated floor plans.
//
// This package defines the archive interface with implementations for
// different backends:
//   - file: JSON files in a config directory for CLI usage
//   - mongo: MongoDB for service deployments
//
// # Architecture
//
// An archived plan is a Record: the full serialized floor plan plus the
// inputs that produced it (config, seed) and the content hash, so a
// record can be re-rendered or re-verified without regenerating. The
// Store interface supports Save/Get/List/Delete; List returns summaries
// without the plan payload.
//
// # Usage
//
//	// CLI
//	st, err := store.NewFileStore("")  // Uses ~/.config/dungen/plans/
//
//	// Service
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
//	rec := store.NewRecord("crypt-level-1", result.Plan, result.PlanHash)
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dungenlab/dungen/pkg/dungeon"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Record is one archived floor plan with its generation inputs.
type Record struct {
	ID        string          `bson:"_id" json:"id"`
	Name      string          `bson:"name,omitempty" json:"name,omitempty"`
	Seed      int64           `bson:"seed" json:"seed"`
	Config    dungeon.Config  `bson:"config" json:"config"`
	PlanHash  string          `bson:"plan_hash" json:"plan_hash"`
	Plan      json.RawMessage `bson:"plan" json:"plan"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
}

// Summary is a Record without its plan payload, as returned by List.
type Summary struct {
	ID        string         `bson:"_id" json:"id"`
	Name      string         `bson:"name,omitempty" json:"name,omitempty"`
	Seed      int64          `bson:"seed" json:"seed"`
	Config    dungeon.Config `bson:"config" json:"config"`
	PlanHash  string         `bson:"plan_hash" json:"plan_hash"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}

// NewRecord assembles a record for a finished plan with a fresh ID and
// creation timestamp. It returns an error only if the plan cannot be
// serialized.
func NewRecord(name string, plan *dungeon.FloorPlan, planHash string) (*Record, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Seed:      plan.Seed,
		Config:    plan.Config,
		PlanHash:  planHash,
		Plan:      data,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// DecodePlan deserializes the archived floor plan.
func (r *Record) DecodePlan() (*dungeon.FloorPlan, error) {
	var plan dungeon.FloorPlan
	if err := json.Unmarshal(r.Plan, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// summary projects the record to its List form.
func (r *Record) summary() Summary {
	return Summary{
		ID:        r.ID,
		Name:      r.Name,
		Seed:      r.Seed,
		Config:    r.Config,
		PlanHash:  r.PlanHash,
		CreatedAt: r.CreatedAt,
	}
}

// Store is the interface for floor-plan archive backends.
type Store interface {
	// Save stores a record, replacing any record with the same ID.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns record summaries, newest first, at most limit
	// entries (0 means no limit).
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes a record. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
