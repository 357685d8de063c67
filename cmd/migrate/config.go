package main

import (
	"os"

	"github.com/joho/godotenv"
)

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// migrationsDir returns an on-disk override, or "" to use the embedded set.
func migrationsDir() string {
	return os.Getenv("MIGRATIONS_DIR")
}
