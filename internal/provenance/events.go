package provenance

import (
	"fmt"
	"strings"
	"time"

	"github.com/boxity/boxity/internal/ledger"
	"github.com/boxity/boxity/internal/models"
)

// EventInput is what a person types when logging an event.
type EventInput struct {
	Actor string `json:"actor"`
	Role  string `json:"role"`
	Note  string `json:"note"`
	Image string `json:"image,omitempty"`
}

func (in EventInput) validate() error {
	var fields []string
	if strings.TrimSpace(in.Actor) == "" {
		fields = append(fields, "actor")
	}
	if !models.IsRole(in.Role) {
		fields = append(fields, "role")
	}
	if strings.TrimSpace(in.Note) == "" {
		fields = append(fields, "note")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// LogEvent appends a new event to the batch with the given id. The input
// collection is left untouched: the result is a new collection in which only
// the target batch, with a new event slice, differs. Persisting it is up to
// the caller.
func LogEvent(batches []models.Batch, batchID string, in EventInput, now time.Time) ([]models.Batch, models.Event, error) {
	if err := in.validate(); err != nil {
		return nil, models.Event{}, err
	}

	i := indexOf(batches, batchID)
	if i < 0 {
		return nil, models.Event{}, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}
	target := batches[i]

	// Events are chronological; never stamp one before the latest.
	if latest := target.LatestEventTime(); !now.After(latest) {
		now = latest.Add(time.Millisecond)
	}
	id := ledger.EventID(now)
	for n := 1; target.HasEvent(id); n++ {
		id = fmt.Sprintf("%s-%d", ledger.EventID(now), n)
	}

	event := models.Event{
		ID:        id,
		Actor:     strings.TrimSpace(in.Actor),
		Role:      in.Role,
		Timestamp: models.FormatTimestamp(now),
		Note:      strings.TrimSpace(in.Note),
		Image:     strings.TrimSpace(in.Image),
		Hash:      ledger.GenerateHash(ledger.HashSeed(batchID, in.Actor, now)),
		LedgerRef: ledger.GenerateLedgerRef(),
	}

	events := make([]models.Event, len(target.Events), len(target.Events)+1)
	copy(events, target.Events)
	target.Events = append(events, event)

	next := make([]models.Batch, len(batches))
	copy(next, batches)
	next[i] = target
	return next, event, nil
}
