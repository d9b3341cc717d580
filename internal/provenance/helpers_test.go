package provenance

import "github.com/boxity/boxity/internal/models"

// cloneBatches deep-copies a collection so tests can compare against the input.
func cloneBatches(batches []models.Batch) []models.Batch {
	out := make([]models.Batch, len(batches))
	for i, b := range batches {
		out[i] = b.Clone()
	}
	return out
}
