// Package config provides type-safe environment variable loading with
// per-type caching. A .env file in the working directory is loaded once on
// first use; after that, struct fields tagged with `env` are populated via
// the caarlos0/env parser.
//
//	type ServerConfig struct {
//		Addr        string        `env:"SERVER_ADDR" envDefault:":8080"`
//		ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
//
// Each configuration type is parsed only once per process; subsequent Load
// calls for the same type return the cached value.
package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	cacheMu sync.Mutex
	cache   = map[reflect.Type]any{}
)

// Load populates v from the environment. v must be a non-nil pointer to
// struct. The result is cached by struct type.
func Load(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("config: target must be a non-nil pointer to struct")
	}
	if rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: target must be a pointer to struct")
	}

	// Missing .env files are fine; explicit environment still applies.
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	t := rv.Elem().Type()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[t]; ok {
		rv.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(v); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	cache[t] = rv.Elem().Interface()
	return nil
}

// MustLoad is Load but panics on failure. Intended for application startup.
func MustLoad(v any) {
	if err := Load(v); err != nil {
		panic(err)
	}
}
