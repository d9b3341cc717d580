package files

import (
	"context"
	"fmt"
	"io"

	"github.com/boxity/boxity/internal/config"
	"github.com/boxity/boxity/internal/crypto"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenSlot builds the slot selected by the configuration. The closer releases
// backend connections.
func OpenSlot(ctx context.Context, cfg *config.Config) (slot Slot, closer io.Closer, err error) {
	closer = nopCloser{}

	switch cfg.Store.Backend {
	case config.StoreBackendFile:
		slot = NewFileSlot(cfg.Store.Path())
	case config.StoreBackendMemory:
		slot = NewMemorySlot()
	case config.StoreBackendRedis:
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		slot = NewRedisSlot(client, cfg.Store.Key)
		closer = client
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if !cfg.Store.Encrypt {
		return slot, closer, nil
	}

	masterKey, err := crypto.ReadMasterKey(cfg.Store.MasterKeyHex)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	slot, err = NewEncryptedSlot(slot, masterKey, cfg.Store.Key)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return slot, closer, nil
}
