// Package ledger produces the cosmetic identifiers attached to batches and
// events. None of the values are digests or real ledger transaction ids: they
// are drawn from a non-cryptographic uniform source and are not reproducible.
package ledger

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	HashLength      = 64
	LedgerRefLength = 40
	LedgerRefPrefix = "0x"

	hashAlphabet      = "0123456789abcdef"
	ledgerRefAlphabet = "0123456789ABCDEF"
	base36Alphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	BatchIDPrefix = "CHT"
	EventIDPrefix = "evt-"
)

// GenerateHash returns 64 random lowercase hex characters. The seed is a
// call-site convention only (callers pass batchId+actor+millis); it does not
// influence the output.
func GenerateHash(seed string) string {
	_ = seed
	return randomString(hashAlphabet, HashLength)
}

// GenerateLedgerRef returns "0x" followed by 40 random uppercase hex characters.
func GenerateLedgerRef() string {
	return LedgerRefPrefix + randomString(ledgerRefAlphabet, LedgerRefLength)
}

// GenerateBatchID returns an id of the form CHT-042-K7Q.
func GenerateBatchID() string {
	return fmt.Sprintf("%s-%03d-%s", BatchIDPrefix, rand.Intn(1000), randomString(base36Alphabet, 3))
}

// EventID derives an event identifier from the creation instant.
func EventID(t time.Time) string {
	return fmt.Sprintf("%s%d", EventIDPrefix, t.UnixMilli())
}

// HashSeed builds the conventional seed for GenerateHash.
func HashSeed(batchID, actor string, t time.Time) string {
	return fmt.Sprintf("%s%s%d", batchID, actor, t.UnixMilli())
}

func randomString(alphabet string, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return sb.String()
}
