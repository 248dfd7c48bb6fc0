package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-slice-keeper/internal/adapter"
	"github.com/MKhiriev/go-slice-keeper/internal/client"
	"github.com/MKhiriev/go-slice-keeper/internal/config"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/service"
	"github.com/MKhiriev/go-slice-keeper/internal/store"
	"github.com/MKhiriev/go-slice-keeper/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("slice-keeper-client")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Client, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	ctx := context.Background()
	localDB, err := store.NewConnectSQLite(ctx, cfg.Client, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	localStore := store.NewLocalKeyStore(localDB, log)

	services := service.NewClientServices(localStore, serverAdapter, log, func(err error) {
		log.Warn().Err(err).Msg("held key no longer matches the server-side data")
	})

	ui, err := tui.New(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg.Client, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
