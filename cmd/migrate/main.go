package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"bookscape/internal/config"
	"bookscape/internal/store"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	loadEnvFiles()

	migrator := store.NewMigrator()
	if dir := migrationsDir(); dir != "" {
		migrator = store.NewDirMigrator(dir)
	}

	if *command == "create" {
		if *name == "" {
			log.Fatal("Name is required for 'create' command")
		}
		dir := migrationsDir()
		if dir == "" {
			dir = "db/migrations"
		}
		if err := store.NewDirMigrator(dir).Create(*name); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		fmt.Printf("Migration created: %s\n", *name)
		return
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	conn, err := store.Open(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database (%s): %v", cfg.RedactedDSN(), err)
	}
	defer conn.Close()

	db := conn.SQL.DB
	switch *command {
	case "up":
		if err := migrator.Up(ctx, db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := migrator.Down(ctx, db); err != nil {
			log.Fatalf("Failed to rollback migrations: %v", err)
		}
		fmt.Println("Migrations rolled back successfully")
	case "status":
		if err := migrator.Status(ctx, db); err != nil {
			log.Fatalf("Failed to check migration status: %v", err)
		}
	default:
		log.Fatalf("Unknown command: %s. Use: up, down, status, create", *command)
	}
}
