package provenance

import (
	"context"
	"errors"
	"fmt"

	"github.com/boxity/boxity/internal/files"
	"github.com/boxity/boxity/internal/models"
)

const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// BatchProvider is a source batches can be looked up in.
type BatchProvider interface {
	// Name labels the source in results, e.g. "local".
	Name() string

	// FindBatch reports found=false with a nil error when the source answered
	// but does not know the id.
	FindBatch(ctx context.Context, id string) (batch models.Batch, found bool, err error)
}

// LocalProvider looks batches up in the local store.
type LocalProvider struct {
	store *files.BatchStore
}

var _ BatchProvider = (*LocalProvider)(nil)

func NewLocalProvider(store *files.BatchStore) *LocalProvider {
	return &LocalProvider{store: store}
}

func (p *LocalProvider) Name() string { return SourceLocal }

func (p *LocalProvider) FindBatch(ctx context.Context, id string) (models.Batch, bool, error) {
	b, ok := FindBatchByID(p.store.Load(ctx), id)
	return b, ok, nil
}

// ProviderChain asks each provider in turn and returns the first hit.
type ProviderChain []BatchProvider

// FindBatch returns the batch and the name of the provider that had it. When
// no provider has it the error is ErrBatchNotFound, or the last provider
// failure if any provider could not answer.
func (c ProviderChain) FindBatch(ctx context.Context, id string) (models.Batch, string, error) {
	var lastErr error
	for _, p := range c {
		b, ok, err := p.FindBatch(ctx, id)
		if err != nil {
			lastErr = err
			continue
		}
		if ok {
			return b, p.Name(), nil
		}
	}
	if lastErr != nil {
		return models.Batch{}, "", lastErr
	}
	return models.Batch{}, "", fmt.Errorf("%w: %s", ErrBatchNotFound, id)
}

// IsNotFound reports whether err only means the batch does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBatchNotFound)
}
