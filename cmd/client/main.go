package main

import (
	"context"
	"log"

	"github.com/mlevkov/authgate/internal/client/cli"
	"github.com/mlevkov/authgate/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
