package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-api/api-gateway/internal/gateway"
	"restaurant-api/config"
	"restaurant-api/logger"

	"github.com/rs/cors"
)

func main() {
	config.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := gateway.Config{
		RestaurantSvcURL: config.GetEnv("RESTAURANT_SVC_URL", "http://localhost:8081"),
		AggSvcURL:        config.GetEnv("AGG_SVC_URL", "http://localhost:8082"),
	}

	client := &http.Client{Timeout: config.GetDuration("UPSTREAM_TIMEOUT", 30*time.Second)}
	gw := gateway.NewGateway(cfg, client, logger.NewLogger("api-gateway"))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	})

	srv := &http.Server{
		Addr:              config.GetEnv("HTTP_ADDR", ":8080"),
		Handler:           c.Handler(gw.SetupRoutes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("API Gateway starting on %s", srv.Addr)
	if err := gateway.Serve(ctx, srv, ln, 10*time.Second); err != nil {
		log.Fatal(err)
	}
}
