package provenance

import "github.com/boxity/boxity/internal/models"

// FindBatchByID returns the first batch whose id equals id exactly.
func FindBatchByID(batches []models.Batch, id string) (models.Batch, bool) {
	i := indexOf(batches, id)
	if i < 0 {
		return models.Batch{}, false
	}
	return batches[i], true
}

func indexOf(batches []models.Batch, id string) int {
	for i := range batches {
		if batches[i].ID == id {
			return i
		}
	}
	return -1
}
