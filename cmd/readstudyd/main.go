package main

import (
	"context"
	"log"

	"readstudy/internal/config"
	"readstudy/internal/daemon"
)

func main() {
	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := daemon.Run(context.Background(), cfg); err != nil {
		log.Fatalf("readstudyd: %v", err)
	}
}
