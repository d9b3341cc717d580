package provenance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/boxity/boxity/internal/files"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrBatchNotFound    = errors.New("batch not found")
	ErrNotSupplyPayload = errors.New("not a supply payload")
	ErrExternalService  = errors.New("external service failure")

	// Re-exported so callers need a single import to classify errors
	ErrDuplicateBatch = files.ErrDuplicateBatch
	ErrConflict       = files.ErrConflict
)

// ValidationError lists required fields that were missing or invalid.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("missing or invalid: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
