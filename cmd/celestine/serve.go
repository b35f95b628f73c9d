package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	celestine "github.com/Anonyfox/celestine-sub000"
	httpAdapter "github.com/Anonyfox/celestine-sub000/pkg/adapters/http"
	redisStore "github.com/Anonyfox/celestine-sub000/pkg/adapters/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the transit engine in server mode, exposing a JSON API over HTTP.
With --redis, ephemeris samples are cached in Redis and shared across
processes.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")

		opts := []celestine.Option{}
		if redisAddr != "" {
			store := redisStore.New(redisAddr, "", 0, redisStore.WithTTL(24*time.Hour))
			defer store.Close()
			opts = append(opts, celestine.WithPositionStore(store))
		}
		engine := celestine.New(opts...)

		handler := httpAdapter.NewHandler(engine, celestine.Version)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Celestine Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown failed: %v\n", err)
				_ = srv.Close()
			}
		}
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the shared position cache (e.g. localhost:6379)")
	rootCmd.AddCommand(serveCmd)
}
