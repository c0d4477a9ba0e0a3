package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	httpapi "restaurant-api/agg-svc/internal/api/http"
	"restaurant-api/agg-svc/internal/service"
	"restaurant-api/agg-svc/internal/storage"
	"restaurant-api/config"
	"restaurant-api/logger"
)

func main() {
	config.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLog := logger.NewLogger("agg-svc")

	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader(config.KafkaTopic(), config.GetEnv("KAFKA_GROUP_ID", "agg-svc"))
	defer reader.Close()

	store := storage.NewStore(rdb, config.GetDuration("ANALYTICS_RETENTION", storage.DefaultRetention))
	consumer := service.NewConsumer(reader, store, appLog)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumer.Start(ctx)
	}()

	handler := httpapi.NewHandler(service.NewAnalyticsService(store), appLog)
	if err := httpapi.StartServer(ctx, config.GetEnv("HTTP_ADDR", ":8082"), httpapi.NewRouter(handler)); err != nil {
		log.Printf("HTTP server stopped: %v", err)
		stop()
	}
	wg.Wait()
	appLog.Info("shutdown", "", "agg-svc stopped")
}
