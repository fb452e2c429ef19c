package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsing is returned when environment variables cannot be parsed into
// the configuration struct.
var ErrParsing = errors.New("failed to parse configuration")

var (
	dotenvOnce sync.Once
	mu         sync.Mutex
	cache      = make(map[reflect.Type]any)
)

// Load fills cfg from the environment. A .env file in the working directory
// is loaded on first use; variables already set in the process win.
// Values present in cfg before the first call act as defaults.
// The result is cached per type: later calls return the first result.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// Missing .env is fine: production reads the real environment.
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	loaded := *cfg
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("%w %s: %w", ErrParsing, typ, err)
	}

	cache[typ] = loaded
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on error. Intended for startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration so the next Load reads the
// environment again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}
