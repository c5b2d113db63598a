package main

import (
	"context"
	"log"

	"github.com/mlevkov/authgate/internal/server"
	"github.com/mlevkov/authgate/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := server.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
