package async

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/asynckit/logger"
	"github.com/kbukum/asynckit/observability"
)

// InstrumentOption configures Instrument.
type InstrumentOption func(*instrumentConfig)

type instrumentConfig struct {
	name    string
	log     *logger.Logger
	metrics *observability.RunMetrics
	tracer  trace.Tracer
}

// WithName labels runs in logs, spans and metrics. Defaults to the strategy's
// String.
func WithName(name string) InstrumentOption {
	return func(c *instrumentConfig) {
		c.name = name
	}
}

// WithLogger sets the logger. Defaults to logger.Get("async").
func WithLogger(l *logger.Logger) InstrumentOption {
	return func(c *instrumentConfig) {
		c.log = l
	}
}

// WithMetrics records item and run measurements. Without it no metrics are
// recorded.
func WithMetrics(m *observability.RunMetrics) InstrumentOption {
	return func(c *instrumentConfig) {
		c.metrics = m
	}
}

// WithTracer sets the tracer that opens one span per run. Defaults to the
// global provider's observability.TracerName tracer.
func WithTracer(t trace.Tracer) InstrumentOption {
	return func(c *instrumentConfig) {
		c.tracer = t
	}
}

// Instrument decorates s so each run gets an ID, a span, debug logs for its
// start and end, a warning per failed item, and metrics when configured.
// Scheduling and outcomes are those of s.
func Instrument(s Strategy, opts ...InstrumentOption) Strategy {
	cfg := instrumentConfig{name: s.String()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.log == nil {
		cfg.log = logger.Get("async")
	}
	if cfg.tracer == nil {
		cfg.tracer = observability.Tracer(observability.TracerName)
	}
	return &instrumented{inner: s, cfg: cfg}
}

type instrumented struct {
	inner Strategy
	cfg   instrumentConfig
}

func (s *instrumented) String() string { return s.inner.String() }

func (s *instrumented) Run(n int, task Task, final Callback) *Events {
	runID := uuid.NewString()
	name := s.cfg.name
	metrics := s.cfg.metrics

	ctx, span := s.cfg.tracer.Start(context.Background(), observability.SpanRun, trace.WithAttributes(
		attribute.String(observability.AttrRunID, runID),
		attribute.String(observability.AttrStrategy, name),
		attribute.Int(observability.AttrItems, n),
	))
	log := s.cfg.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldRunID, runID,
		logger.FieldStrategy, name,
	))
	log.Debug("run started", logger.Fields(logger.FieldItems, n))
	start := time.Now()

	wrapped := func(i int, done Done) {
		if metrics != nil {
			metrics.RecordItemStart(ctx, name)
		}
		var signaled atomic.Bool
		task(i, func(err error) {
			// A repeat call is a caller bug, not an item outcome; the inner
			// handle panics on it.
			if !signaled.CompareAndSwap(false, true) {
				done(err)
				return
			}
			if metrics != nil {
				metrics.RecordItemEnd(ctx, name, err != nil)
			}
			if err != nil {
				log.Warn("item failed", logger.Fields(
					logger.FieldIndex, i,
					logger.FieldError, err.Error(),
				))
			}
			done(err)
		})
	}

	return s.inner.Run(n, wrapped, func(errs Errors) {
		elapsed := time.Since(start)
		if metrics != nil {
			metrics.RecordRun(ctx, name, errs.Len(), elapsed)
		}

		span.SetAttributes(attribute.Int(observability.AttrFailed, errs.Len()))
		if errs != nil {
			span.SetAttributes(attribute.IntSlice(observability.AttrFailedIndices, errs.Indices()))
			span.SetStatus(codes.Error, errs.Error())
		}
		span.End()

		log.Debug("run finished", logger.MergeWithDuration(
			logger.Fields(logger.FieldFailed, errs.Len()), elapsed,
		))

		if final != nil {
			final(errs)
		}
	})
}
