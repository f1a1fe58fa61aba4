package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vitormoschetta/go-bedrock-chat/internal/config"
	"github.com/vitormoschetta/go-bedrock-chat/internal/handler"
	"github.com/vitormoschetta/go-bedrock-chat/internal/logging"
	"github.com/vitormoschetta/go-bedrock-chat/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded")
	}

	cfg := config.Load()

	logger, err := logging.Init(cfg.Log)
	if err != nil {
		logger.Warn("log file disabled", "path", cfg.Log.File, "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Criar servidor
	srv, err := server.NewServer(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Criar handlers
	h := handler.NewHandler(srv.Generator, cfg.AWS, logger)

	// Configurar rotas com os handlers
	srv.SetupRouter(h.HandleRoot, h.HandleHealth, h.HandleChat)

	// Iniciar servidor
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
