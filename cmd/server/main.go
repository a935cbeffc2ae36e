package main

import (
	"log"

	"github.com/akoQassym/grandmaster-ai/app"
	"github.com/akoQassym/grandmaster-ai/app/config"
	"github.com/akoQassym/grandmaster-ai/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Logs.Style, cfg.Logs.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	server := app.NewServer(cfg, lg)
	router := app.NewRouter(server)

	lg.Info("listening", "addr", cfg.Addr, "backend", cfg.Backend.BaseURL)
	if err := router.Run(cfg.Addr); err != nil {
		lg.Fatal("server exited", "err", err)
	}
}
