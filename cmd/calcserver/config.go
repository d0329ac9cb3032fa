package main

import (
	"strings"

	"github.com/go-playground/validator/v10"
	perrors "github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config of calcserver. Environment variables (CALCSERVER_<KEY>) take precedence
// over the config file.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// OutDir is where result logs (Task<N>.txt) are written.
	OutDir string `mapstructure:"out_dir" validate:"required"`

	// Count is the number of requests per submitter.
	Count int `mapstructure:"count" validate:"gt=0"`

	// Ops lists one submitter per entry.
	Ops []string `mapstructure:"ops" validate:"required,min=1,dive,oneof=sin sqrt pow"`

	// Seed of argument generators. 0 means time based.
	Seed int64 `mapstructure:"seed"`
}

// LoadConfig loads configuration from defaults, an optional config file and
// environment variables, then validates it.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("out_dir", ".")
	v.SetDefault("count", 10000)
	v.SetDefault("ops", []string{"sin", "sqrt", "pow"})
	v.SetDefault("seed", 0)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, perrors.Wrapf(err, "read config file %q", configFile)
		}
	}

	v.SetEnvPrefix("CALCSERVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, perrors.Wrap(err, "unmarshal config")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, perrors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}
