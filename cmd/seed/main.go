package main

import (
	"context"
	"log"
	"os"

	"shopfront/internal/config"
	"shopfront/internal/db"
	adminrepo "shopfront/internal/repository/admin"
	"shopfront/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	repo := adminrepo.NewPostgres(dbpool)
	if err := seed.AdminAccount(ctx, repo, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
		logger.Fatalf("seed admin: %v", err)
	}
}
