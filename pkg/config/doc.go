// Package config loads typed configuration structs from environment
// variables and optional .env files.
//
// Struct fields are bound with caarlos0/env tags. The default .env file in the
// working directory is read once through godotenv before the first parse;
// LoadEnv reads additional files explicitly, with later files overriding
// earlier ones.
//
// Parsed values are cached per type, so every call to Load for the same
// struct type returns the same values without touching the environment again.
// ForceReloadConfig re-parses a single type and ResetCache drops everything.
//
// # Usage
//
//	var cfg statemachine.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
//	machine, err := statemachine.NewFromConfig(Idle, table, cfg)
//
// Applications that cannot start without their configuration use MustLoad:
//
//	config.MustLoadEnv(".env", ".env.local")
//	config.MustLoad(&cfg)
//
// Field types that implement encoding.TextUnmarshaler, such as
// statemachine.StrategyKind, validate their own values, so an unknown
// FSM_STRATEGY fails at load time.
//
// # Error Handling
//
// Parse failures are joined with ErrParsingConfig. Load returns ErrNilPointer
// for a nil target and ErrInvalidConfigType when T is not a struct. A failed
// Load is not cached and may be retried after the environment is fixed.
package config
