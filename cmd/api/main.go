package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movierec/internal/config"
	"movierec/internal/httpserver"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "ruta del JSON de configuración")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("falta JWT_SECRET")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	server, err := httpserver.New(startupCtx, cfg)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	// el build del modelo es un batch pesado de CPU: corre fuera del camino
	// de los requests; hasta que termina las consultas responden 503
	go func() {
		if err := server.BuildModel(); err != nil {
			log.Printf("[MODEL] build falló: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
		os.Exit(0)
	}()

	log.Printf("API escuchando en %s", cfg.HTTPAddr)
	log.Fatal(server.Run())
}
