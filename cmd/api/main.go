package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/reusse-app/backend/internal/config"
	"github.com/reusse-app/backend/internal/db"
	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/server"
	"github.com/reusse-app/backend/internal/storage"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Request{},
		&model.Item{},
		&model.Meeting{},
		&model.Message{},
		&model.Notification{},
		&model.Transaction{},
	); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	var storageClient *storage.Client
	if cfg.StorageBucket != "" {
		storageClient, err = storage.NewClient(ctx, cfg.StorageBucket, cfg.CredentialsFile)
		if err != nil {
			log.Fatalf("storage client error: %v", err)
		}
		defer storageClient.Close()
	}

	srv, err := server.New(ctx, cfg, conn, storageClient)
	if err != nil {
		log.Fatalf("server init error: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
