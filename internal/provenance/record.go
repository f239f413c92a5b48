// Package provenance records which calculations were produced, for which case and by whom.
package provenance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/withholding-calculator/internal/domain"
)

// Record is one persisted calculation.
type Record struct {
	ID         string              `json:"id"`
	CaseNumber string              `json:"case_number"`
	Scenario   domain.ScenarioKind `json:"scenario"`
	Actor      string              `json:"actor"`
	ResultJSON string              `json:"result"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Recorder persists calculation records.
type Recorder interface {
	Save(ctx context.Context, rec Record) error
	// FindByCaseNumber returns records whose case number contains fragment,
	// newest first.
	FindByCaseNumber(ctx context.Context, fragment string) ([]Record, error)
}

// ActorSource resolves the identity a calculation is attributed to.
type ActorSource interface {
	Actor(ctx context.Context) (string, error)
}

// StaticActor attributes every calculation to a fixed name.
type StaticActor string

func (s StaticActor) Actor(context.Context) (string, error) { return string(s), nil }

func newRecordID() string { return uuid.NewString() }
