package main

import (
	"context"
	"log"
	"os"

	"launchdash/adapters/excel"
	"launchdash/adapters/sqlstore"
	"launchdash/internal/container"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: migrate <driver> <database_url> [launches.csv|launches.xlsx]")
	}

	driver := os.Args[1]
	databaseURL := os.Args[2]

	// Open applies every pending migration
	store, err := sqlstore.Open(driver, databaseURL)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	defer store.Close()
	log.Printf("Schema is up to date (%s)", store.Describe())

	if len(os.Args) < 4 {
		return
	}

	ctx := context.Background()
	path := os.Args[3]
	log.Printf("Starting import from %s", path)

	if _, err := container.Import(ctx, excel.NewFileSource(path), store); err != nil {
		log.Fatalf("Failed to import launches: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count launches: %v", err)
	}
	log.Printf("Import complete: %d launches stored", count)
}
