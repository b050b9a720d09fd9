package main

import (
	"context"
	"log"

	"launchdash/internal/config"
	"launchdash/internal/container"
	"launchdash/ui"
	"launchdash/ui/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatal("Failed to create container:", err)
	}
	defer c.Shutdown(context.Background())

	if err := c.Load(context.Background()); err != nil {
		log.Fatal("Failed to load launch dataset:", err)
	}

	notes, err := services.LoadNotes(cfg.Dashboard.NotesFile)
	if err != nil {
		log.Fatal("Failed to load notes:", err)
	}

	app, err := ui.NewApp(c.Data, ui.Options{
		Title:  cfg.Dashboard.Title,
		Slider: ui.NewSlider(cfg.Dashboard.SliderMin, cfg.Dashboard.SliderMax, cfg.Dashboard.SliderStep),
		Notes:  notes,
	})
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Fatal(app.Start(":" + cfg.Server.Port))
}
