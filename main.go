package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"

	"launchdash/internal"
	"launchdash/internal/config"
	"launchdash/internal/container"
	"launchdash/ui"
	"launchdash/ui/services"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel)).With("Main")

	// Create dependency injection container
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	// The dataset is read exactly once; the dashboard cannot start without it
	if err := appContainer.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load launch dataset: %v", err)
	}
	logger.Info("Loaded %d launches from %s", appContainer.Dataset.Len(), appContainer.Data.Source())

	notes, err := services.LoadNotes(appConfig.Dashboard.NotesFile)
	if err != nil {
		log.Fatalf("Failed to load notes: %v", err)
	}

	server, err := ui.NewServer(appContainer.Data, ui.Options{
		Title: appConfig.Dashboard.Title,
		Slider: ui.NewSlider(
			appConfig.Dashboard.SliderMin,
			appConfig.Dashboard.SliderMax,
			appConfig.Dashboard.SliderStep,
		),
		Notes:   notes,
		GinMode: appConfig.Server.GinMode,
	})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if appConfig.Profiling.Enabled {
		go func() {
			addr := "localhost:" + appConfig.Profiling.Port
			logger.Info("pprof listening on http://%s/debug/pprof/", addr)
			if err := http.ListenAndServe(addr, nil); err != nil {
				logger.Error("pprof server stopped: %v", err)
			}
		}()
	}

	addr := ":" + appConfig.Server.Port
	if err := server.Start(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
