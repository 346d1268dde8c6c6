package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sicko7947/recordkit"
	"github.com/sicko7947/recordkit/api"
	"github.com/sicko7947/recordkit/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})

	cfg := recordkit.ConfigFromEnv()

	client, err := store.NewDynamoDBClient(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create DynamoDB client")
	}

	resolver := recordkit.NewResolver(
		store.NewDynamoDBStore(client, cfg.TableName),
		recordkit.WithConfig(cfg),
		recordkit.WithLogger(log.Logger),
	)

	app := api.NewServer(resolver, log.Logger).App()

	// Start server in a goroutine
	go func() {
		addr := ":" + port()
		log.Info().Str("address", addr).Str("table", cfg.TableName).Msg("Starting HTTP server")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "3000"
}
