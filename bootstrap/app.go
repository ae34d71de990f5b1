package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/asynckit/async"
	"github.com/kbukum/asynckit/config"
	"github.com/kbukum/asynckit/logger"
	"github.com/kbukum/asynckit/observability"
)

// asyncComponent names the registered logger of instrumented strategies.
const asyncComponent = "async"

// App wires configuration, logging, telemetry and the configured strategy
// around a finite task.
//
//	app, err := bootstrap.NewApp(cfg)
//	err = app.RunTask(ctx, func(ctx context.Context, a *bootstrap.App) error {
//	    async.EachWith(a.Strategy, jobs, process, nil).Wait()
//	    return nil
//	})
type App struct {
	Name    string
	Version string
	Cfg     *config.Config
	Logger  *logger.Logger
	Summary *Summary

	// Strategy and Metrics are available once RunTask has started the app.
	Strategy async.Strategy
	Metrics  *observability.RunMetrics

	gracefulTimeout time.Duration
	meter           metric.Meter
	tracer          trace.Tracer

	onStart []Hook
	onStop  []Hook
}

// NewApp applies defaults, validates cfg and initializes the logger.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	app := &App{
		Name:            cfg.Name,
		Version:         cfg.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	app.meter = o.meter
	app.tracer = o.tracer

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(cfg.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	app.Summary = NewSummary(cfg.Name, cfg.Version)
	return app, nil
}

// RunTask starts the app, runs task, and shuts down once task returns.
// SIGINT and SIGTERM cancel the context handed to task; runs already started
// are not interrupted.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context, app *App) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx, a)
	a.Summary.Display(a.Logger)

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App) startup(ctx context.Context) error {
	a.Logger.Info("Starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := a.initTelemetry(ctx); err != nil {
		return fmt.Errorf("telemetry initialization failed: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	base, err := async.FromConfig(a.Cfg.Strategy)
	if err != nil {
		return err
	}
	meter := a.meter
	if meter == nil {
		meter = observability.Meter(observability.TracerName)
	}
	if a.Metrics, err = observability.NewRunMetrics(meter); err != nil {
		return fmt.Errorf("run metrics: %w", err)
	}
	// Also found by strategies the task instruments without WithLogger.
	logger.Register(asyncComponent, a.Logger.WithComponent(asyncComponent))
	a.OnStop(func(context.Context) error {
		logger.Unregister(asyncComponent)
		return nil
	})
	opts := []async.InstrumentOption{
		async.WithLogger(logger.Get(asyncComponent)),
		async.WithMetrics(a.Metrics),
	}
	if a.tracer != nil {
		opts = append(opts, async.WithTracer(a.tracer))
	}
	a.Strategy = async.Instrument(base, opts...)

	a.Logger.Info("Application ready", map[string]interface{}{
		"strategy":  a.Strategy.String(),
		"telemetry": a.Cfg.Telemetry.Enabled,
	})
	return nil
}

// initTelemetry installs the OTLP meter and tracer providers when enabled and
// registers their shutdown. Explicit meter or tracer options take precedence.
func (a *App) initTelemetry(ctx context.Context) error {
	tc := a.Cfg.Telemetry
	if !tc.Enabled || (a.meter != nil && a.tracer != nil) {
		return nil
	}

	mp, err := observability.InitMeter(ctx, tc.MeterConfig(a.Name, a.Version, a.Cfg.Environment))
	if err != nil {
		return err
	}
	a.OnStop(mp.Shutdown)

	tp, err := observability.InitTracer(ctx, tc.TracerConfig(a.Name, a.Version, a.Cfg.Environment))
	if err != nil {
		return err
	}
	a.OnStop(tp.Shutdown)
	return nil
}

// stop runs the OnStop hooks, last registered first, within the graceful
// timeout.
func (a *App) stop() error {
	a.Logger.Info("Shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	for i := len(a.onStop) - 1; i >= 0; i-- {
		if err := a.onStop[i](ctx); err != nil {
			a.Logger.Error("OnStop hook error", map[string]interface{}{
				"error": err.Error(),
			})
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}
