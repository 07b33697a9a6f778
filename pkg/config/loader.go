package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache provides a type-safe way to store and retrieve configuration
// instances using generics
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	// globalCache is the singleton instance for caching configurations
	globalCache = &configCache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	defaultEnvMu     sync.Mutex
	defaultEnvLoaded bool
)

// LoadEnv loads variables from the given .env files into the process
// environment. With no arguments the default .env in the working directory
// is loaded. Files are applied in order and later files override earlier
// ones, so a base file can be followed by an environment specific override.
//
// Calling LoadEnv marks the default .env as handled: a later Load will not
// read it again.
func LoadEnv(files ...string) error {
	defaultEnvMu.Lock()
	defer defaultEnvMu.Unlock()

	var err error
	if len(files) == 0 {
		err = godotenv.Load()
	} else {
		err = godotenv.Overload(files...)
	}
	if err != nil {
		return fmt.Errorf("loading env files %v: %w", files, err)
	}

	defaultEnvLoaded = true
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(files ...string) {
	if err := LoadEnv(files...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

func loadDefaultEnv() {
	defaultEnvMu.Lock()
	defer defaultEnvMu.Unlock()

	if defaultEnvLoaded {
		return
	}
	// Ignore errors - the .env file might not exist and that's ok
	_ = godotenv.Load()
	defaultEnvLoaded = true
}

// Load loads environment variables into the provided configuration struct.
// It ensures that each unique configuration type is only loaded once
// throughout the application lifecycle.
//
// The function first attempts to load the default .env file if it hasn't been loaded yet,
// then parses environment variables into a struct based on field tags.
// Once a configuration type is successfully loaded, subsequent calls for the same
// type will return the cached version.
//
// Example:
//
//	var cfg statemachine.Config
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	loadDefaultEnv()
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	if cached, ok := cachedValue[T](typeName); ok {
		*v = cached
		return nil
	}

	globalCache.mu.Lock()
	once, exists := globalCache.onces[typeName]
	if !exists {
		once = new(sync.Once)
		globalCache.onces[typeName] = once
	}
	globalCache.mu.Unlock()

	var err error

	// Use sync.Once to ensure the config is parsed only once per type
	once.Do(func() {
		err = parseAndStore(v, typeName)
	})

	if err != nil {
		// Allow a later call to retry once the environment is fixed
		globalCache.mu.Lock()
		delete(globalCache.onces, typeName)
		globalCache.mu.Unlock()
		return err
	}

	// Ensure the value is loaded from cache for concurrent requests
	if cached, ok := cachedValue[T](typeName); ok {
		*v = cached
		return nil
	}

	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
//
// Example:
//
//	var cfg statemachine.Config
//	config.MustLoad(&cfg)
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// ForceReloadConfig parses the environment into v again, bypassing and then
// replacing the cached value for T.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	globalCache.mu.Lock()
	delete(globalCache.values, typeName)
	delete(globalCache.onces, typeName)
	globalCache.mu.Unlock()

	return Load(v)
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*sync.Once)
	globalCache.mu.Unlock()
}

func parseAndStore[T any](v *T, typeName string) error {
	var parsed T
	if t := reflect.TypeOf(parsed); t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a struct", ErrInvalidConfigType, typeName)
	}
	if parseErr := env.Parse(&parsed); parseErr != nil {
		return errors.Join(ErrParsingConfig, parseErr)
	}

	globalCache.mu.Lock()
	globalCache.values[typeName] = parsed // Store a copy to avoid external modifications
	globalCache.mu.Unlock()

	*v = parsed
	return nil
}

func cachedValue[T any](typeName string) (T, bool) {
	globalCache.mu.RLock()
	defer globalCache.mu.RUnlock()

	cached, ok := globalCache.values[typeName]
	if !ok {
		var zero T
		return zero, false
	}
	return cached.(T), true
}

// getTypeName returns a string identifier for the generic type T
func getTypeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		// Handle interface types
		return fmt.Sprintf("%T", new(T))
	}
	return t.PkgPath() + "." + t.String()
}
