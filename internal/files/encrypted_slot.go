package files

import (
	"context"
	"errors"

	"github.com/boxity/boxity/internal/crypto"
	"github.com/boxity/boxity/internal/utils"
	"github.com/sirupsen/logrus"
)

// EncryptedSlot seals everything written to the wrapped slot with AES-GCM.
// Versions are computed over plaintext. Content that cannot be decrypted is
// returned as is, so the store treats it like any other unparseable data.
type EncryptedSlot struct {
	inner Slot
	key   []byte
	log   *logrus.Entry
}

// NewEncryptedSlot derives the slot key from the master key and the slot name.
func NewEncryptedSlot(inner Slot, masterKey []byte, slotName string) (*EncryptedSlot, error) {
	key, err := crypto.DeriveSlotKey(masterKey, slotName)
	if err != nil {
		return nil, err
	}
	return &EncryptedSlot{
		inner: inner,
		key:   key,
		log:   utils.NewSublogger("encrypted-slot"),
	}, nil
}

func (s *EncryptedSlot) Name() string { return "encrypted:" + s.inner.Name() }

func (s *EncryptedSlot) Read(ctx context.Context) ([]byte, error) {
	raw, err := s.inner.Read(ctx)
	if err != nil {
		return nil, err
	}
	return s.open(raw), nil
}

func (s *EncryptedSlot) Write(ctx context.Context, data []byte) error {
	blob, err := crypto.EncryptAESGCM(s.key, data)
	if err != nil {
		return err
	}
	return s.inner.Write(ctx, blob)
}

func (s *EncryptedSlot) Swap(ctx context.Context, version string, data []byte) error {
	raw, err := s.inner.Read(ctx)
	innerVersion := ""
	switch {
	case errors.Is(err, ErrSlotEmpty):
		if version != "" {
			return ErrConflict
		}
	case err != nil:
		return err
	default:
		if Version(s.open(raw)) != version {
			return ErrConflict
		}
		innerVersion = Version(raw)
	}

	blob, err := crypto.EncryptAESGCM(s.key, data)
	if err != nil {
		return err
	}
	return s.inner.Swap(ctx, innerVersion, blob)
}

func (s *EncryptedSlot) Delete(ctx context.Context) error {
	return s.inner.Delete(ctx)
}

func (s *EncryptedSlot) open(raw []byte) []byte {
	plain, err := crypto.DecryptAESGCM(s.key, raw)
	if err != nil {
		s.log.WithError(err).WithField("slot", s.inner.Name()).Warn("Failed to decrypt slot")
		return raw
	}
	return plain
}
