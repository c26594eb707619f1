package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/dosewise/medsafe/internal/db"
	"github.com/dosewise/medsafe/internal/timing"
)

// Loads the embedded timing rule table into Postgres so operators can curate
// overrides without a rebuild. Positions preserve table order, which partial
// matching depends on.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	repo := timing.NewPgRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	log.Printf("seeding %d timing rules", len(timing.DefaultTable))

	for i, e := range timing.DefaultTable {
		if err := repo.UpsertEntry(ctx, i, e); err != nil {
			log.Fatalf("seed rule %q: %v", e.Key, err)
		}
	}

	log.Println("seed complete")
}
