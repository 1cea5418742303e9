package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"

	"github.com/oarkflow/invoicer"
	"github.com/oarkflow/invoicer/pkg/config"
)

func main() {
	cfg := config.New(".env", false, nil)
	settings, err := config.LoadSettings(cfg)
	if err != nil {
		color.Red.Println(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	portal := invoicer.New(settings)
	log.Printf("listening on %s", settings.Addr)
	if err := portal.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
