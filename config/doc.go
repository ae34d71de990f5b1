// Package config loads the configuration of asynckit processes.
//
// Values come from a config.yml found next to the command (cmd/<name>),
// under config/, or in the working directory, then from a .env file, and
// finally from the process environment. Environment variables are upper
// snake case paths without a prefix, e.g. STRATEGY_MODE=series or
// WORKLOAD_MAX_DELAY=50ms.
//
//	cfg, err := config.Load("asyncdemo")
package config
