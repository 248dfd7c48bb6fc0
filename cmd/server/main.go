package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-slice-keeper/internal/config"
	handler "github.com/MKhiriev/go-slice-keeper/internal/handler/http"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/server"
	"github.com/MKhiriev/go-slice-keeper/internal/service"
	"github.com/MKhiriev/go-slice-keeper/internal/store"
	"github.com/MKhiriev/go-slice-keeper/internal/utils"
	"github.com/MKhiriev/go-slice-keeper/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("slice-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	utils.InitHasherPool(cfg.App.HashKey)

	ctx := context.Background()
	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, cfg, log)
	handlers := handler.NewHandler(services, cfg.Server.RotationTimeout, log)

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
