// Package bootstrap runs a finite asynckit task with its infrastructure:
// validated configuration, the global logger, optional OTLP telemetry, and an
// instrumented strategy built from the strategy section of the config.
//
//	app, err := bootstrap.NewApp(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = app.RunTask(ctx, work)
//
// SIGINT and SIGTERM cancel the task context. Shutdown hooks, including the
// telemetry providers' flush, run within a graceful timeout.
package bootstrap
