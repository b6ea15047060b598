package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/halow-dashboard/api/dashboardhandler"
	"github.com/ruteri/halow-dashboard/api/healthhandler"
	"github.com/ruteri/halow-dashboard/api/secretshandler"
	"github.com/ruteri/halow-dashboard/cmd/flags"
	"github.com/ruteri/halow-dashboard/httpserver"
	"github.com/ruteri/halow-dashboard/registry"
	"github.com/ruteri/halow-dashboard/storage"
	"github.com/ruteri/halow-dashboard/views"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "halow-dashboard",
		Usage: "Serve the halow records dashboard and secrets browser",
		Flags: append(append([]cli.Flag{}, flags.DashboardFlags...), flags.CommonFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			cfg, err := flags.BuildConfig(cCtx)
			if err != nil {
				logger.Error("Invalid configuration", "err", err)
				return err
			}

			store, err := storage.NewRecordStore(cfg, logger)
			if err != nil {
				logger.Error("Failed to create record store", "err", err)
				return err
			}

			secrets, err := registry.NewSecretRegistry(cfg, logger)
			if err != nil {
				logger.Error("Failed to create secret registry", "err", err)
				return err
			}

			renderer, err := views.NewRenderer()
			if err != nil {
				logger.Error("Failed to parse templates", "err", err)
				return err
			}

			dashboard, err := dashboardhandler.NewHandler(store, renderer, cfg, logger)
			if err != nil {
				logger.Error("Failed to create dashboard handler", "err", err)
				return err
			}

			server, err := httpserver.New(flags.ConfigureServer(cCtx, logger, cfg.ListenAddr()),
				dashboard,
				secretshandler.NewHandler(secrets, renderer, cfg, logger),
				healthhandler.NewHandler(cfg.ServiceName, logger),
			)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Dashboard configured",
				"environment", cfg.Environment,
				"region", cfg.Region,
				"recordStore", store.Name(),
				"table", cfg.TableName,
				"secretRegistry", secrets.Name(),
			)
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
