package provenance

import (
	"context"
	"strings"
	"time"

	"github.com/boxity/boxity/internal/files"
	"github.com/boxity/boxity/internal/metrics"
	"github.com/boxity/boxity/internal/models"
	"github.com/boxity/boxity/internal/utils"
	"github.com/sirupsen/logrus"
)

// Service ties the store, the batch providers and the clock together. It is
// safe for concurrent use.
type Service struct {
	store     *files.BatchStore
	providers ProviderChain
	now       func() time.Time
	log       *logrus.Entry
}

// NewService builds a service over store. The local store is always asked
// first; extra providers are consulted after it, in order.
func NewService(store *files.BatchStore, extra ...BatchProvider) *Service {
	providers := ProviderChain{NewLocalProvider(store)}
	providers = append(providers, extra...)
	return &Service{
		store:     store,
		providers: providers,
		now:       time.Now,
		log:       utils.NewSublogger("provenance"),
	}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) ListBatches(ctx context.Context) []models.Batch {
	return s.store.Load(ctx)
}

// GetBatch looks a batch up by id in every provider. Surrounding whitespace
// in id is ignored; matching is otherwise exact. The second result names the
// provider that had the batch.
func (s *Service) GetBatch(ctx context.Context, id string) (models.Batch, string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Batch{}, "", &ValidationError{Fields: []string{"id"}, Message: "Batch id is required"}
	}
	return s.providers.FindBatch(ctx, id)
}

func (s *Service) CreateBatch(ctx context.Context, in BatchInput) (created models.Batch, err error) {
	_, err = s.store.Update(ctx, func(batches []models.Batch) (next []models.Batch, err error) {
		next, created, err = CreateBatch(batches, in, s.now())
		return
	})
	if err != nil {
		return
	}

	metrics.BatchesCreated.Inc()
	s.log.WithField("id", created.ID).WithField("product", created.ProductName).Info("Batch created")
	return
}

// LogEvent appends an event to a local batch and persists it.
func (s *Service) LogEvent(ctx context.Context, batchID string, in EventInput) (event models.Event, err error) {
	batchID = strings.TrimSpace(batchID)
	_, err = s.store.Update(ctx, func(batches []models.Batch) (next []models.Batch, err error) {
		next, event, err = LogEvent(batches, batchID, in, s.now())
		return
	})
	if err != nil {
		return
	}

	metrics.EventsLogged.Inc()
	s.log.WithField("batch", batchID).WithField("event", event.ID).WithField("role", event.Role).Info("Event logged")
	return
}

// ResetDemo drops every local change so the fixtures are served again.
func (s *Service) ResetDemo(ctx context.Context) error {
	err := s.store.Reset(ctx)
	if err != nil {
		return err
	}
	s.log.Info("Demo data reset")
	return nil
}
