package main

import (
	"context"
	"log"
	"os"

	"shopfront/internal/config"
	"shopfront/internal/db"
	"shopfront/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	if err := migrate.Apply(ctx, dbpool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}
	logger.Printf("migrations applied")
}
