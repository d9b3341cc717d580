package config

import (
	"fmt"
	"path/filepath"

	"github.com/boxity/boxity/internal/utils"
	"github.com/spf13/viper"
)

const (
	StoreBackendFile   = "file"
	StoreBackendRedis  = "redis"
	StoreBackendMemory = "memory"
)

// Store configures the batch slot
type Store struct {
	// One of file, redis, memory
	Backend string

	// Name of the slot. Used as the redis key and as the file name stem.
	Key string

	// Directory holding the slot file for the file backend
	Dir string

	// Encrypt slot contents with a key derived from the master key
	Encrypt bool

	// Hex encoded 32 byte master key. Falls back to MASTER_KEY_HEX and master.key.
	MasterKeyHex string
}

// Path of the slot file for the file backend.
func (s Store) Path() string {
	return filepath.Join(s.Dir, s.Key+".json")
}

func setStoreDefaults(v *viper.Viper) {
	v.SetDefault("Store.Backend", StoreBackendFile)
	v.SetDefault("Store.Key", "boxity-batches")
	v.SetDefault("Store.Dir", utils.GetDataDir())
	v.SetDefault("Store.Encrypt", "false")
	v.SetDefault("Store.MasterKeyHex", "")
}

func (s Store) validate() error {
	switch s.Backend {
	case StoreBackendFile, StoreBackendRedis, StoreBackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", s.Backend)
	}
	if s.Key == "" {
		return fmt.Errorf("store key must not be empty")
	}
	return nil
}
