package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	MasterKeyEnv  = "MASTER_KEY_HEX"
	MasterKeyFile = "master.key"
	KeySize       = 32
)

// ReadMasterKey decodes the master key from the explicit hex value, then the
// MASTER_KEY_HEX env var, then the master.key file in the working directory.
func ReadMasterKey(explicitHex string) ([]byte, error) {
	h := explicitHex
	if h == "" {
		h = os.Getenv(MasterKeyEnv)
	}
	if h == "" {
		data, err := os.ReadFile(MasterKeyFile)
		if err != nil {
			return nil, fmt.Errorf("%s not set and %s file not found", MasterKeyEnv, MasterKeyFile)
		}
		h = string(data)
	}
	b, err := hex.DecodeString(strings.TrimSpace(h))
	if err != nil {
		return nil, fmt.Errorf("master key hex decode error: %w", err)
	}
	if len(b) != KeySize {
		return nil, fmt.Errorf("master key length must be 32 bytes (hex 64 chars): %w", ErrInvalidKeyLength)
	}
	return b, nil
}

// DeriveSlotKey derives the 32-byte key protecting one storage slot using HKDF-SHA256.
func DeriveSlotKey(master []byte, slot string) ([]byte, error) {
	if len(master) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	h := hkdf.New(sha256.New, master, nil, []byte("boxity-slot:"+slot))
	out := make([]byte, KeySize)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateMasterKey returns a fresh hex encoded master key.
func GenerateMasterKey() string {
	return hex.EncodeToString(MustRandom(KeySize))
}

// MustRandom returns n random bytes or panics.
func MustRandom(n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err)
	}
	return b
}
