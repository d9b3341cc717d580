package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMasterKey(t *testing.T) {
	key := GenerateMasterKey()

	b, err := ReadMasterKey(key)
	require.NoError(t, err)
	require.Len(t, b, KeySize)

	t.Setenv(MasterKeyEnv, "  "+key+"\n")
	b2, err := ReadMasterKey("")
	require.NoError(t, err)
	require.Equal(t, b, b2)

	_, err = ReadMasterKey("zz")
	require.Error(t, err)

	_, err = ReadMasterKey(hex.EncodeToString([]byte("short")))
	require.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestDeriveSlotKey(t *testing.T) {
	master := MustRandom(KeySize)

	a, err := DeriveSlotKey(master, "boxity-batches")
	require.NoError(t, err)
	again, err := DeriveSlotKey(master, "boxity-batches")
	require.NoError(t, err)
	other, err := DeriveSlotKey(master, "other")
	require.NoError(t, err)

	assert.Len(t, a, KeySize)
	assert.Equal(t, a, again)
	assert.NotEqual(t, a, other)

	_, err = DeriveSlotKey([]byte("short"), "x")
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestAESGCMRoundTrip(t *testing.T) {
	key := MustRandom(KeySize)
	plain := []byte(`[{"id":"CHT-DEMO"}]`)

	blob, err := EncryptAESGCM(key, plain)
	require.NoError(t, err)
	require.False(t, bytes.Contains(blob, plain))

	out, err := DecryptAESGCM(key, blob)
	require.NoError(t, err)
	require.Equal(t, plain, out)

	_, err = DecryptAESGCM(MustRandom(KeySize), blob)
	require.Error(t, err)

	_, err = DecryptAESGCM(key, []byte{1, 2})
	require.Error(t, err)
}
