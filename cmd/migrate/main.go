// Command migrate applies the room store schema to DATABASE_URL.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"bridgeroom/internal/ports/postgres"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("Missing required env var DATABASE_URL. Put it in .env (dev) or set it on the host (prod).")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	log.Printf("room store schema applied")
}
