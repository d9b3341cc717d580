package config

import (
	"time"

	"github.com/spf13/viper"
)

// Integrity configures the image comparison. Hardcoded findings are returned when URL is empty.
type Integrity struct {
	URL string

	RequestTimeout time.Duration

	// Upper bound of a single uploaded image, in bytes
	MaxImageSize int64
}

func setIntegrityDefaults(v *viper.Viper) {
	v.SetDefault("Integrity.URL", "")
	v.SetDefault("Integrity.RequestTimeout", "60s")
	v.SetDefault("Integrity.MaxImageSize", 10<<20)
}
