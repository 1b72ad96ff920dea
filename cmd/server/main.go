package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/health-keeper/internal/adapter"
	"github.com/MKhiriev/health-keeper/internal/config"
	"github.com/MKhiriev/health-keeper/internal/crypto"
	myHTTP "github.com/MKhiriev/health-keeper/internal/handler/http"
	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/server"
	"github.com/MKhiriev/health-keeper/internal/service"
	"github.com/MKhiriev/health-keeper/internal/store"
	"github.com/MKhiriev/health-keeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("health-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	cipher := crypto.NewVaultCipher(cfg.App.MasterSecret, cfg.App.KDFSalt)
	pins := crypto.NewPINHasher(cfg.App.PINCost)

	services := service.NewServices(storages, cipher, pins, *cfg, log)

	classifier := adapter.NewHTTPClassifier(adapter.ClassifierConfig{
		BaseURL: cfg.Classifier.BaseURL,
		APIKey:  cfg.Classifier.APIKey,
		Model:   cfg.Classifier.Model,
		Timeout: cfg.Classifier.Timeout,
	}, log)

	backgroundWorkers := workers.NewWorkers(services, *cfg, log)
	backgroundWorkers.Run()

	handler := myHTTP.NewHandler(services, classifier, *cfg, log)

	srv, err := server.NewServer(handler, cfg.Server, log, backgroundWorkers.Stop)
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
