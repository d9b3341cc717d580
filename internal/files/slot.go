package files

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	// ErrSlotEmpty is returned by Slot.Read when nothing is stored.
	ErrSlotEmpty = errors.New("slot is empty")

	// ErrConflict is returned when the slot changed since the caller read it.
	ErrConflict = errors.New("slot changed concurrently")

	// ErrDuplicateBatch is returned when a collection holds two batches with the same id.
	ErrDuplicateBatch = errors.New("duplicate batch id")
)

// Slot is a single named key-value slot holding the serialized collection.
type Slot interface {
	// Read returns the stored bytes or ErrSlotEmpty.
	Read(ctx context.Context) ([]byte, error)

	// Write overwrites the slot unconditionally.
	Write(ctx context.Context, data []byte) error

	// Swap overwrites the slot only if its current content has the given
	// version (see Version); an empty version means the slot must be absent.
	// Otherwise it returns ErrConflict.
	Swap(ctx context.Context, version string, data []byte) error

	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context) error

	// Name identifies the slot in logs.
	Name() string
}

// Version identifies stored content: the hex SHA-256 of the raw bytes.
func Version(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
