// Package observability provides OpenTelemetry tracing and metrics for
// strategy runs.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("asyncdemo"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("asyncdemo"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewRunMetrics(observability.Meter("asyncdemo"))
//	strategy := async.Instrument(async.Limit(4), async.WithMetrics(metrics))
package observability
