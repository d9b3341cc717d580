package provenance

import (
	"fmt"
	"strings"
	"time"

	"github.com/boxity/boxity/internal/ledger"
	"github.com/boxity/boxity/internal/models"
)

const (
	DefaultOrigin        = "Your Company"
	DefaultBaselineImage = "/demo/placeholder.jpg"
)

// BatchInput is the registration form of a new batch.
type BatchInput struct {
	// Generated when empty
	ID            string `json:"id,omitempty"`
	ProductName   string `json:"productName"`
	SKU           string `json:"sku,omitempty"`
	Origin        string `json:"origin,omitempty"`
	BaselineImage string `json:"baselineImage,omitempty"`
}

// CreateBatch registers a batch ahead of the existing ones and returns the new
// collection; the input collection is not modified.
func CreateBatch(batches []models.Batch, in BatchInput, now time.Time) ([]models.Batch, models.Batch, error) {
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return nil, models.Batch{}, &ValidationError{Fields: []string{"productName"}, Message: "Product name is required"}
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = ledger.GenerateBatchID()
		for indexOf(batches, id) >= 0 {
			id = ledger.GenerateBatchID()
		}
	} else if indexOf(batches, id) >= 0 {
		return nil, models.Batch{}, fmt.Errorf("%w: %s", ErrDuplicateBatch, id)
	}

	batch := models.Batch{
		ID:            id,
		ProductName:   name,
		SKU:           strings.TrimSpace(in.SKU),
		Origin:        orDefault(in.Origin, DefaultOrigin),
		CreatedAt:     models.FormatTimestamp(now),
		BaselineImage: orDefault(in.BaselineImage, DefaultBaselineImage),
		Events:        []models.Event{},
	}

	next := make([]models.Batch, 0, len(batches)+1)
	next = append(next, batch)
	next = append(next, batches...)
	return next, batch, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
