package wrapper

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/captain-sol/voyage-client/pkg/config"
)

// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
var ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

// typed converts the values of an untyped config. Env sources produce
// []byte, memory and viper sources produce native values.
type typed[T any] struct {
	source       config.Config
	defaultValue T
	convert      func(interface{}) (T, error)

	stateMu   sync.RWMutex
	lastValue T
}

func newTyped[T any](source config.Config, defaultValue T, convert func(interface{}) (T, error)) *typed[T] {
	return &typed[T]{
		source:       source,
		defaultValue: defaultValue,
		convert:      convert,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A
// best-effort attempt is made to return the last known value.
func (c *typed[T]) GetSafe(ctx context.Context) (T, error) {
	raw, err := c.source.Get(ctx)

	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()

	if err == config.ErrNoValue {
		c.set(c.defaultValue)
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	value, err := c.convert(raw)
	if err != nil {
		return lastValue, err
	}
	c.set(value)
	return value, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *typed[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

func (c *typed[T]) Shutdown() {
	c.source.Shutdown()
}

func (c *typed[T]) set(value T) {
	c.stateMu.Lock()
	c.lastValue = value
	c.stateMu.Unlock()
}

func NewStringConfig(source config.Config, defaultValue string) config.String {
	return newTyped(source, defaultValue, func(raw interface{}) (string, error) {
		switch v := raw.(type) {
		case []byte:
			return string(v), nil
		case string:
			return v, nil
		default:
			return "", ErrUnsuportedConversion
		}
	})
}

func NewBoolConfig(source config.Config, defaultValue bool) config.Bool {
	return newTyped(source, defaultValue, func(raw interface{}) (bool, error) {
		switch v := raw.(type) {
		case []byte:
			return strconv.ParseBool(string(v))
		case string:
			return strconv.ParseBool(v)
		case bool:
			return v, nil
		default:
			return false, ErrUnsuportedConversion
		}
	})
}

func NewUint64Config(source config.Config, defaultValue uint64) config.Uint64 {
	return newTyped(source, defaultValue, func(raw interface{}) (uint64, error) {
		switch v := raw.(type) {
		case []byte:
			return strconv.ParseUint(strings.TrimSpace(string(v)), 10, 64)
		case string:
			return strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		case uint64:
			return v, nil
		case uint:
			return uint64(v), nil
		case int:
			if v < 0 {
				return 0, errors.Errorf("config: negative value %d", v)
			}
			return uint64(v), nil
		case int64:
			if v < 0 {
				return 0, errors.Errorf("config: negative value %d", v)
			}
			return uint64(v), nil
		default:
			return 0, ErrUnsuportedConversion
		}
	})
}
