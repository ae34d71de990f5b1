// Package logger provides structured logging for asynckit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logger:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("async")
//	log.Debug("run started", logger.Fields("run_id", id, "items", n))
package logger
