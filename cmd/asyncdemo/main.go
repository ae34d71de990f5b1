package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/asynckit/bootstrap"
	"github.com/kbukum/asynckit/config"
	"github.com/kbukum/asynckit/logger"
	"github.com/kbukum/asynckit/version"
)

const serviceName = "asyncdemo"

func main() {
	var (
		configFile  = flag.String("config", "", "Path to config.yml (searched for when empty)")
		envFile     = flag.String("env", "", "Path to .env file (searched for when empty)")
		showVersion = flag.Bool("version", false, "Print the version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Short())
		return
	}

	// Until the config is loaded, LOG_LEVEL and LOG_FORMAT drive logging.
	logger.SetGlobalLogger(logger.NewFromEnv(serviceName))

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	cfg, err := config.Load(serviceName, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := app.RunTask(context.Background(), runWorkload); err != nil {
		app.Logger.Error("Workload failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}
