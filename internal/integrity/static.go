package integrity

import (
	"context"

	"github.com/boxity/boxity/internal/models"
)

// StaticChecker returns the same findings for any pair of images. It backs
// the demo when no comparison service is configured.
type StaticChecker struct{}

var _ Checker = StaticChecker{}

func (StaticChecker) Check(ctx context.Context, before, after []byte) ([]models.Difference, error) {
	if err := requireImages(before, after); err != nil {
		return nil, err
	}
	return []models.Difference{
		{
			Location:    "Top-right corner",
			Severity:    models.SeverityMedium,
			Description: "Visible dent detected (3.2mm depth)",
		},
		{
			Location:    "Left side panel",
			Severity:    models.SeverityLow,
			Description: "Minor surface scratches",
		},
		{
			Location:    "Seal integrity",
			Severity:    models.SeverityHigh,
			Description: "Seal appears tampered - security breach detected",
		},
	}, nil
}
