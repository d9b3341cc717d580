package files

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/boxity/boxity/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestBatchStoreMemorySuite(t *testing.T) {
	suite.Run(t, &BatchStoreTestSuite{newSlot: func(t *testing.T) Slot {
		return NewMemorySlot()
	}})
}

func TestBatchStoreFileSuite(t *testing.T) {
	suite.Run(t, &BatchStoreTestSuite{newSlot: func(t *testing.T) Slot {
		return NewFileSlot(filepath.Join(t.TempDir(), "data", "boxity-batches.json"))
	}})
}

type BatchStoreTestSuite struct {
	suite.Suite
	newSlot func(t *testing.T) Slot

	ctx   context.Context
	slot  Slot
	store *BatchStore
}

func (s *BatchStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.slot = s.newSlot(s.T())
	s.store = NewBatchStore(s.slot)
}

func (s *BatchStoreTestSuite) TestLoadEmptyReturnsFixtures() {
	batches := s.store.Load(s.ctx)
	require.Equal(s.T(), Fixtures(), batches)

	// Each load hands out an independent copy.
	batches[0].Events[0].Note = "changed"
	require.Equal(s.T(), Fixtures(), s.store.Load(s.ctx))
}

func (s *BatchStoreTestSuite) TestRoundTrip() {
	batches := Fixtures()
	batches = append(batches, models.Batch{
		ID:            "CHT-123-QWE",
		ProductName:   "Widget",
		Origin:        "Your Company",
		CreatedAt:     "2026-01-02T03:04:05.678Z",
		BaselineImage: "/demo/placeholder.jpg",
		Events:        []models.Event{},
	})

	require.NoError(s.T(), s.store.Save(s.ctx, batches))
	require.Equal(s.T(), batches, s.store.Load(s.ctx))
}

func (s *BatchStoreTestSuite) TestSaveEmptyCollection() {
	require.NoError(s.T(), s.store.Save(s.ctx, nil))
	require.Empty(s.T(), s.store.Load(s.ctx))
}

func (s *BatchStoreTestSuite) TestCorruptFallsBackToFixtures() {
	for _, content := range []string{
		"{not json",
		`{"id":"CHT-001-ABC"}`,
		"null",
		"[1,2,3]",
		`[{"productName":"no id"}]`,
	} {
		require.NoError(s.T(), s.slot.Write(s.ctx, []byte(content)))
		require.Equal(s.T(), Fixtures(), s.store.Load(s.ctx), content)
	}
}

func (s *BatchStoreTestSuite) TestResetIsIdempotent() {
	batches := Fixtures()[:1]
	require.NoError(s.T(), s.store.Save(s.ctx, batches))

	require.NoError(s.T(), s.store.Reset(s.ctx))
	_, err := s.slot.Read(s.ctx)
	require.ErrorIs(s.T(), err, ErrSlotEmpty)
	first := s.store.Load(s.ctx)

	require.NoError(s.T(), s.store.Reset(s.ctx))
	_, err = s.slot.Read(s.ctx)
	require.ErrorIs(s.T(), err, ErrSlotEmpty)
	second := s.store.Load(s.ctx)

	require.Equal(s.T(), first, second)
	require.Equal(s.T(), Fixtures(), second)
}

func (s *BatchStoreTestSuite) TestSaveRejectsDuplicateIDs() {
	batches := Fixtures()
	batches = append(batches, batches[0])
	err := s.store.Save(s.ctx, batches)
	require.ErrorIs(s.T(), err, ErrDuplicateBatch)
}

func (s *BatchStoreTestSuite) TestSaveIfVersionConflict() {
	_, version, err := s.store.LoadVersioned(s.ctx)
	require.NoError(s.T(), err)
	require.Empty(s.T(), version)

	// Another writer gets there first.
	require.NoError(s.T(), s.store.Save(s.ctx, Fixtures()[:1]))

	err = s.store.SaveIfVersion(s.ctx, Fixtures()[:2], version)
	require.ErrorIs(s.T(), err, ErrConflict)
	require.Len(s.T(), s.store.Load(s.ctx), 1)

	_, version, err = s.store.LoadVersioned(s.ctx)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), version)
	require.NoError(s.T(), s.store.SaveIfVersion(s.ctx, Fixtures()[:2], version))
	require.Len(s.T(), s.store.Load(s.ctx), 2)
}

func (s *BatchStoreTestSuite) TestUpdateReplacesCorruptContent() {
	require.NoError(s.T(), s.slot.Write(s.ctx, []byte("garbage")))

	next, err := s.store.Update(s.ctx, func(batches []models.Batch) ([]models.Batch, error) {
		return batches[:1], nil
	})
	require.NoError(s.T(), err)
	require.Len(s.T(), next, 1)
	require.Equal(s.T(), next, s.store.Load(s.ctx))
}

func (s *BatchStoreTestSuite) TestUpdateDoesNotSaveOnError() {
	require.NoError(s.T(), s.store.Save(s.ctx, Fixtures()))
	_, err := s.store.Update(s.ctx, func(batches []models.Batch) ([]models.Batch, error) {
		return nil, ErrDuplicateBatch
	})
	require.ErrorIs(s.T(), err, ErrDuplicateBatch)
	require.Equal(s.T(), Fixtures(), s.store.Load(s.ctx))
}

func TestUpdateSerializesWriters(t *testing.T) {
	ctx := context.Background()
	store := NewBatchStore(NewMemorySlot())
	require.NoError(t, store.Save(ctx, []models.Batch{}))

	const writers = 20
	done := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			_, err := store.Update(ctx, func(batches []models.Batch) ([]models.Batch, error) {
				return append(batches, models.Batch{ID: string(rune('A' + i))}), nil
			})
			done <- err
		}(i)
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-done)
	}
	require.Len(t, store.Load(ctx), writers)
}
