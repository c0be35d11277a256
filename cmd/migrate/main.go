package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pratik-mahalle/streamvault/internal/config"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/internal/repository/sqlstore"
	"github.com/pratik-mahalle/streamvault/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Printf("Connected to %s database successfully\n", cfg.Database.Driver)

	schema, err := migrations.GetFS(cfg.Database.Driver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load migrations: %v\n", err)
		os.Exit(1)
	}

	applied, err := sqlstore.RunMigrations(ctx, db, cfg.Database.Driver, schema, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	if len(applied) == 0 {
		fmt.Println("Schema is up to date")
		return
	}

	for _, name := range applied {
		fmt.Printf("✓ Migration %s completed successfully\n", name)
	}
	fmt.Println("\nAll migrations completed successfully!")
}
