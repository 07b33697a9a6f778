package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/statekit/pkg/config"
	"github.com/dmitrymomot/statekit/pkg/logger"
	"github.com/dmitrymomot/statekit/pkg/statemachine"
)

const (
	Locked   = statemachine.StringState("locked")
	Unlocked = statemachine.StringState("unlocked")

	Coin = statemachine.StringTrigger("coin")
	Push = statemachine.StringTrigger("push")
)

type appConfig struct {
	Env    string `env:"APP_ENV" envDefault:"development"`
	Riders int    `env:"TURNSTILE_RIDERS" envDefault:"20"`
}

type riderKey struct{}

func main() {
	var (
		app    appConfig
		fsmCfg statemachine.Config
	)
	config.MustLoad(&app)
	config.MustLoad(&fsmCfg)

	log := logger.New(
		logger.WithEnvironment(app.Env, "turnstile"),
		logger.WithContextValue("rider", riderKey{}),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, app, fsmCfg); err != nil {
		log.Error("turnstile failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, app appConfig, fsmCfg statemachine.Config) error {
	var coins, ignored atomic.Int64

	table := statemachine.MustNewTable(
		statemachine.WithTransition(Locked, Unlocked, Coin,
			statemachine.WithAction(func(ctx context.Context, from, to statemachine.State, trigger statemachine.Trigger, data any) error {
				coins.Add(1)
				return nil
			}),
		),
		statemachine.WithTransition(Unlocked, Locked, Push),
		statemachine.WithEntry(Unlocked, func(ctx context.Context, from, to statemachine.State, trigger statemachine.Trigger, data any) error {
			log.DebugContext(ctx, "gate opened")
			return nil
		}),
	)

	machine, err := statemachine.NewFromConfig(Locked, table, fsmCfg,
		statemachine.WithLogger(log),
		statemachine.WithUnhandledTriggerHandler(func(ctx context.Context, state statemachine.State, trigger statemachine.Trigger) {
			ignored.Add(1)
		}),
	)
	if err != nil {
		return err
	}
	defer machine.Close()

	log.InfoContext(ctx, "turnstile ready",
		logger.MachineID(machine.ID().String()),
		logger.Strategy(string(fsmCfg.Strategy)),
		logger.State(machine.Current().Name()),
	)

	var rejected atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for i := range app.Riders {
		riderCtx := context.WithValue(ctx, riderKey{}, i)
		g.Go(func() error {
			for _, trigger := range []statemachine.Trigger{Coin, Push} {
				err := machine.Fire(riderCtx, trigger, nil)
				switch {
				case err == nil:
				case errors.Is(err, statemachine.ErrConcurrencyViolation),
					statemachine.IsUnhandledTriggerError(err):
					rejected.Add(1)
				default:
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.InfoContext(ctx, "turnstile finished",
		logger.State(machine.Current().Name()),
		slog.Int64("coins", coins.Load()),
		slog.Int64("rejected", rejected.Load()),
		slog.Int64("ignored", ignored.Load()),
	)
	return nil
}
