package main

import (
	"context"
	"log"

	"github.com/dbelyaeva/fitlog/internal/server"
	"github.com/dbelyaeva/fitlog/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
