package viper

import (
	"context"

	"github.com/spf13/viper"

	"github.com/captain-sol/voyage-client/pkg/config"
	"github.com/captain-sol/voyage-client/pkg/config/wrapper"
)

type conf struct {
	v   *viper.Viper
	key string
}

// NewConfig returns a config backed by a key of a viper instance, so values
// can come from a config file, bound env vars or explicit sets. A nil
// instance uses the global viper.
func NewConfig(v *viper.Viper, key string) config.Config {
	if v == nil {
		v = viper.GetViper()
	}
	return &conf{v: v, key: key}
}

// Get implements Config.Get
func (c *conf) Get(_ context.Context) (interface{}, error) {
	if !c.v.IsSet(c.key) {
		return nil, config.ErrNoValue
	}

	val := c.v.Get(c.key)
	if val == nil {
		return nil, config.ErrNoValue
	}
	if s, ok := val.(string); ok && len(s) == 0 {
		return nil, config.ErrNoValue
	}
	return val, nil
}

// Shutdown implements Config.Shutdown
func (c *conf) Shutdown() {
}

func NewStringConfig(v *viper.Viper, key string, defaultValue string) config.String {
	return wrapper.NewStringConfig(NewConfig(v, key), defaultValue)
}

func NewUint64Config(v *viper.Viper, key string, defaultValue uint64) config.Uint64 {
	return wrapper.NewUint64Config(NewConfig(v, key), defaultValue)
}

func NewBoolConfig(v *viper.Viper, key string, defaultValue bool) config.Bool {
	return wrapper.NewBoolConfig(NewConfig(v, key), defaultValue)
}
