// Package integrity compares a baseline package photo with a later one.
package integrity

import (
	"context"

	"github.com/boxity/boxity/internal/config"
	"github.com/boxity/boxity/internal/models"
	"github.com/boxity/boxity/internal/provenance"
)

// Checker reports visible differences between two images of the same package.
type Checker interface {
	Check(ctx context.Context, before, after []byte) ([]models.Difference, error)
}

// New returns the remote checker when a service URL is configured and the
// static one otherwise.
func New(cfg config.Integrity) Checker {
	if cfg.URL == "" {
		return StaticChecker{}
	}
	return NewRemoteChecker(cfg)
}

func requireImages(before, after []byte) error {
	var fields []string
	if len(before) == 0 {
		fields = append(fields, "before")
	}
	if len(after) == 0 {
		fields = append(fields, "after")
	}
	if len(fields) > 0 {
		return &provenance.ValidationError{Fields: fields, Message: "Please upload both baseline and current images"}
	}
	return nil
}
