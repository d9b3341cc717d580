package config

import (
	"bytes"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const envPrefix = "BOXITY_"

// Config stores global configuration
type Config struct {
	// Is development mode on
	IsDevelopment bool

	// REST API address
	RESTListenAddress string

	// Maximum time the server will be closing before stop is forced
	StopTimeout time.Duration

	// Logging level
	LogLevel string

	// Optional log file, stdout when empty
	LogFile string

	Store     Store
	Redis     Redis
	Ledger    Ledger
	Integrity Integrity
	Admin     Admin
	QR        QR
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("IsDevelopment", "false")
	v.SetDefault("RESTListenAddress", ":8080")
	v.SetDefault("LogLevel", "INFO")
	v.SetDefault("LogFile", "")
	v.SetDefault("StopTimeout", "30s")

	setStoreDefaults(v)
	setRedisDefaults(v)
	setLedgerDefaults(v)
	setIntegrityDefaults(v)
	setAdminDefaults(v)
	setQRDefaults(v)
}

// Default returns the configuration built from defaults and environment only.
func Default() (config *Config) {
	config, err := Load("")
	if err != nil {
		panic(err)
	}
	return
}

// bindEnv visits every field and registers an upper snake case env name for it,
// e.g. Store.Backend -> BOXITY_STORE_BACKEND.
func bindEnv(v *viper.Viper, path []string, val reflect.Value) {
	if val.Kind() != reflect.Struct {
		key := strings.Join(path, ".")
		env := envPrefix + strcase.ToScreamingSnake(strings.Join(path, "_"))
		err := v.BindEnv(key, env)
		if err != nil {
			panic(err)
		}
		return
	}

	for i := 0; i < val.NumField(); i++ {
		newPath := make([]string, len(path))
		copy(newPath, path)
		newPath = append(newPath, val.Type().Field(i).Name)
		bindEnv(v, newPath, val.Field(i))
	}
}

// Load configuration from a JSON file and env. Empty filename means defaults
// and env only.
func Load(filename string) (config *Config, err error) {
	v := viper.New()
	v.SetConfigType("json")

	setDefaults(v)
	bindEnv(v, []string{}, reflect.ValueOf(Config{}))

	if filename != "" {
		var content []byte
		/* #nosec */
		content, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}

		err = v.ReadConfig(bytes.NewBuffer(content))
		if err != nil {
			return nil, err
		}
	}

	config = new(Config)
	err = v.Unmarshal(config, func(c *mapstructure.DecoderConfig) {
		c.WeaklyTypedInput = true
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return nil, err
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}
	return
}
