package files

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/boxity/boxity/internal/metrics"
	"github.com/boxity/boxity/internal/models"
	"github.com/boxity/boxity/internal/utils"
	"github.com/sirupsen/logrus"
)

// Longest prefix of discarded slot content written to the log.
const maxLoggedContent = 512

// BatchStore persists the whole batch collection in one slot. Every mutation
// replaces the full collection; Update serializes load-mutate-save cycles in
// this process and rejects the save when another writer changed the slot.
type BatchStore struct {
	slot Slot
	log  *logrus.Entry

	// Serializes Update
	mu sync.Mutex
}

func NewBatchStore(slot Slot) *BatchStore {
	return &BatchStore{
		slot: slot,
		log:  utils.NewSublogger("store"),
	}
}

// Load returns the persisted collection, or a fresh copy of the fixtures when
// the slot is absent, unreadable or does not hold a batch collection. It never
// fails; discarded content is logged.
func (s *BatchStore) Load(ctx context.Context) []models.Batch {
	batches, _, err := s.LoadVersioned(ctx)
	if err != nil {
		s.log.WithError(err).WithField("slot", s.slot.Name()).Error("Failed to read slot, using fixtures")
		metrics.StoreFallbacks.WithLabelValues("read_error").Inc()
		return Fixtures()
	}
	return batches
}

// LoadVersioned is Load plus the version of the slot content, for use with
// SaveIfVersion. The version is empty when the slot is absent. Only read
// errors are returned; corrupt content yields fixtures and the version of the
// corrupt bytes, so a following save may replace them.
func (s *BatchStore) LoadVersioned(ctx context.Context) (batches []models.Batch, version string, err error) {
	data, err := s.slot.Read(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		return Fixtures(), "", nil
	}
	if err != nil {
		return nil, "", err
	}

	version = Version(data)
	batches, err = decode(data)
	if err != nil {
		s.log.WithError(err).
			WithField("slot", s.slot.Name()).
			WithField("content", truncate(data, maxLoggedContent)).
			WithField("size", len(data)).
			Warn("Discarding unparseable slot content, using fixtures")
		metrics.StoreFallbacks.WithLabelValues("corrupt").Inc()
		return Fixtures(), version, nil
	}
	return batches, version, nil
}

// Save overwrites the slot with the full collection.
func (s *BatchStore) Save(ctx context.Context, batches []models.Batch) error {
	data, err := encode(batches)
	if err != nil {
		return err
	}
	return s.slot.Write(ctx, data)
}

// SaveIfVersion overwrites the slot only if it still holds the content
// identified by version, otherwise it returns ErrConflict.
func (s *BatchStore) SaveIfVersion(ctx context.Context, batches []models.Batch, version string) error {
	data, err := encode(batches)
	if err != nil {
		return err
	}
	err = s.slot.Swap(ctx, version, data)
	if errors.Is(err, ErrConflict) {
		metrics.StoreConflicts.Inc()
	}
	return err
}

// Reset deletes the slot so that subsequent loads return fixtures.
func (s *BatchStore) Reset(ctx context.Context) error {
	return s.slot.Delete(ctx)
}

// Update runs one load-mutate-save cycle. fn receives a private copy of the
// collection and returns the collection to persist. Cycles in this process
// never interleave; a change by another process yields ErrConflict and the
// caller may retry.
func (s *BatchStore) Update(ctx context.Context, fn func([]models.Batch) ([]models.Batch, error)) ([]models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batches, version, err := s.LoadVersioned(ctx)
	if err != nil {
		return nil, err
	}

	next, err := fn(batches)
	if err != nil {
		return nil, err
	}

	err = s.SaveIfVersion(ctx, next, version)
	if err != nil {
		return nil, err
	}
	return next, nil
}

func decode(data []byte) ([]models.Batch, error) {
	var batches []models.Batch
	if err := json.Unmarshal(data, &batches); err != nil {
		return nil, err
	}
	if batches == nil {
		return nil, errors.New("slot holds null")
	}
	for i, b := range batches {
		if b.ID == "" {
			return nil, fmt.Errorf("batch at index %d has no id", i)
		}
	}
	return batches, nil
}

func encode(batches []models.Batch) ([]byte, error) {
	if batches == nil {
		batches = []models.Batch{}
	}
	seen := make(map[string]struct{}, len(batches))
	for _, b := range batches {
		if _, ok := seen[b.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBatch, b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return json.MarshalIndent(batches, "", "  ")
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
