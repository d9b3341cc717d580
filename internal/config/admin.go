package config

import "github.com/spf13/viper"

// Admin protects batch creation and demo reset. Routes are open when TokenHash is empty.
type Admin struct {
	// bcrypt hash of the bearer token, see `boxity hashtoken`
	TokenHash string
}

func setAdminDefaults(v *viper.Viper) {
	v.SetDefault("Admin.TokenHash", "")
}
