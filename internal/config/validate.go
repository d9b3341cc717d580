package config

import "fmt"

// Validate checks values that would otherwise fail late, at first use.
func (c *Config) Validate() error {
	if c.RESTListenAddress == "" {
		return fmt.Errorf("RESTListenAddress must not be empty")
	}
	if err := c.Store.validate(); err != nil {
		return err
	}
	if err := c.QR.validate(); err != nil {
		return err
	}
	return nil
}
