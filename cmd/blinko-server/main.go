package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/blinko-space/blinko-server/internal/app"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "blinko.yaml", "path to the server config file")
	flag.Parse()

	// Optional .env next to the binary; missing files are fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, *configPath); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
