package config

import (
	"time"

	"github.com/spf13/viper"
)

// Ledger configures the remote batch source. Remote lookups are skipped when URL is empty.
type Ledger struct {
	URL string

	// Timeout of a single lookup
	RequestTimeout time.Duration

	// How long found batches are cached
	CacheTTL time.Duration

	// How long "not found" answers are cached
	NegativeCacheTTL time.Duration
}

func setLedgerDefaults(v *viper.Viper) {
	v.SetDefault("Ledger.URL", "")
	v.SetDefault("Ledger.RequestTimeout", "10s")
	v.SetDefault("Ledger.CacheTTL", "1m")
	v.SetDefault("Ledger.NegativeCacheTTL", "10s")
}
