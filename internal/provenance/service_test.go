package provenance

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/boxity/boxity/internal/files"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

type ServiceTestSuite struct {
	suite.Suite

	ctx     context.Context
	store   *files.BatchStore
	service *Service
	now     time.Time
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = testNow
	s.store = files.NewBatchStore(files.NewMemorySlot())
	s.service = NewService(s.store).WithClock(func() time.Time { return s.now })
}

func (s *ServiceTestSuite) TestListBatchesStartsWithFixtures() {
	s.Equal(files.Fixtures(), s.service.ListBatches(s.ctx))
}

func (s *ServiceTestSuite) TestGetBatchTrimsInput() {
	b, source, err := s.service.GetBatch(s.ctx, "  CHT-002-XYZ\n")
	s.Require().NoError(err)
	s.Equal("ColdVax", b.ProductName)
	s.Equal(SourceLocal, source)

	_, _, err = s.service.GetBatch(s.ctx, "CHT-404")
	s.ErrorIs(err, ErrBatchNotFound)

	_, _, err = s.service.GetBatch(s.ctx, "   ")
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceTestSuite) TestLogEventPersists() {
	event, err := s.service.LogEvent(s.ctx, " CHT-DEMO ", EventInput{Actor: "WarehouseA", Role: "Warehouse", Note: "test"})
	s.Require().NoError(err)

	b, _, err := s.service.GetBatch(s.ctx, "CHT-DEMO")
	s.Require().NoError(err)
	s.Require().Len(b.Events, 3)
	s.Equal(event, b.Events[2])

	// A second service over the same store sees the event
	other := NewService(s.store)
	b, _, err = other.GetBatch(s.ctx, "CHT-DEMO")
	s.Require().NoError(err)
	s.Len(b.Events, 3)
}

func (s *ServiceTestSuite) TestLogEventUnknownBatchLeavesStore() {
	_, err := s.service.LogEvent(s.ctx, "CHT-NOPE", EventInput{Actor: "a", Role: "Other", Note: "n"})
	s.ErrorIs(err, ErrBatchNotFound)
	s.Equal(files.Fixtures(), s.service.ListBatches(s.ctx))
}

func (s *ServiceTestSuite) TestCreateBatchThenReset() {
	created, err := s.service.CreateBatch(s.ctx, BatchInput{ID: "CHT-500-AAA", ProductName: "Widget"})
	s.Require().NoError(err)
	s.Equal("CHT-500-AAA", created.ID)

	batches := s.service.ListBatches(s.ctx)
	s.Require().Len(batches, 4)
	s.Equal(created, batches[0])

	_, err = s.service.CreateBatch(s.ctx, BatchInput{ID: "CHT-500-AAA", ProductName: "Widget"})
	s.ErrorIs(err, ErrDuplicateBatch)

	s.Require().NoError(s.service.ResetDemo(s.ctx))
	s.Equal(files.Fixtures(), s.service.ListBatches(s.ctx))
}

func TestServiceConcurrentLogEvent(t *testing.T) {
	store := files.NewBatchStore(files.NewMemorySlot())
	service := NewService(store)
	ctx := context.Background()

	const writers = 20
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			_, err := service.LogEvent(ctx, "CHT-DEMO", EventInput{Actor: "a", Role: "Other", Note: "n"})
			errs <- err
		}()
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-errs)
	}

	b, _, err := service.GetBatch(ctx, "CHT-DEMO")
	require.NoError(t, err)
	require.Len(t, b.Events, 2+writers)

	seen := make(map[string]bool)
	for _, e := range b.Events {
		require.False(t, seen[e.ID], e.ID)
		seen[e.ID] = true
	}
}

func TestServicesSharingFileKeepEveryEvent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "boxity-batches.json")
	services := []*Service{
		NewService(files.NewBatchStore(files.NewFileSlot(path))),
		NewService(files.NewBatchStore(files.NewFileSlot(path))),
	}

	const perService = 30
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		acked int
	)
	for _, service := range services {
		for i := 0; i < perService; i++ {
			wg.Add(1)
			go func(service *Service) {
				defer wg.Done()
				for {
					_, err := service.LogEvent(ctx, "CHT-DEMO", EventInput{Actor: "a", Role: "Other", Note: "n"})
					if errors.Is(err, ErrConflict) {
						time.Sleep(time.Millisecond)
						continue
					}
					if err == nil {
						mu.Lock()
						acked++
						mu.Unlock()
					}
					return
				}
			}(service)
		}
	}
	wg.Wait()

	require.Equal(t, 2*perService, acked)
	b, _, err := services[0].GetBatch(ctx, "CHT-DEMO")
	require.NoError(t, err)
	require.Len(t, b.Events, 2+acked)
}
