package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type QR struct {
	// Edge length of minted batch codes, in pixels
	BatchSize int

	// Edge length of the sample payload code, in pixels
	TestSize int
}

func setQRDefaults(v *viper.Viper) {
	v.SetDefault("QR.BatchSize", 400)
	v.SetDefault("QR.TestSize", 512)
}

func (q QR) validate() error {
	if q.BatchSize <= 0 || q.TestSize <= 0 {
		return fmt.Errorf("qr sizes must be positive")
	}
	return nil
}
