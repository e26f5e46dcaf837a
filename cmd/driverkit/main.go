// Command driverkit is a smoke tool: it resolves settings, creates a single
// driver instance for the requested browser kind, reports the session, and
// quits it.
package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/entrhq/driverkit/pkg/config"
	"github.com/entrhq/driverkit/pkg/driver"
)

func main() {
	browser := flag.String("browser", "chrome", "browser kind to create")
	configPath := flag.String("config", "", "optional YAML settings file")
	gridURL := flag.String("grid", "", "remote grid URL override")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	settings := config.FromEnv()
	if *configPath != "" {
		settings, err = config.Load(*configPath)
		if err != nil {
			logger.Fatal("loading settings", zap.Error(err))
		}
	}

	kind, err := driver.ParseKind(*browser)
	if err != nil {
		logger.Fatal("selecting browser", zap.Error(err))
	}

	opts := []driver.Option{driver.WithLogger(logger)}
	if *gridURL != "" {
		opts = append(opts, driver.WithGridURL(*gridURL))
	}

	factory := driver.New(settings, opts...)
	d, err := factory.Create(kind)
	if err != nil {
		logger.Fatal("creating driver", zap.Error(err))
	}

	logger.Info("driver ready",
		zap.String("driver_id", d.ID()),
		zap.String("browser", string(kind)))

	if err := d.Quit(); err != nil {
		logger.Error("quitting driver", zap.Error(err))
	}
}
