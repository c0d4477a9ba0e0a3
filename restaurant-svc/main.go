package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-api/config"
	"restaurant-api/logger"
	httpapi "restaurant-api/restaurant-svc/internal/api/http"
	"restaurant-api/restaurant-svc/internal/service"
	"restaurant-api/restaurant-svc/internal/storage"
)

func main() {
	config.LoadEnv()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLog := logger.NewLogger("restaurant-svc")

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter(config.KafkaTopic())
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to prepare schema:", err)
	}

	cache := storage.NewRedisMenuCache(rdb, config.GetDuration("MENU_CACHE_TTL", 5*time.Minute))
	publisher := storage.NewKafkaPublisher(writer)
	qr := service.DefaultQRGenerator{BaseURL: config.GetEnv("PUBLIC_BASE_URL", "http://localhost:8080")}

	catalogSvc := service.NewCatalogService(repo, cache, appLog)
	cartSvc := service.NewCartService(repo, repo)
	orderSvc := service.NewOrderService(repo, repo, publisher, qr, appLog)
	profileSvc := service.NewProfileService(repo, appLog)

	auth := httpapi.NewAuthenticator(secret, profileSvc)
	handler := httpapi.NewHandler(catalogSvc, cartSvc, orderSvc, profileSvc, auth, appLog)

	if err := httpapi.StartServer(ctx, config.GetEnv("HTTP_ADDR", ":8081"), httpapi.NewRouter(handler)); err != nil {
		log.Fatal(err)
	}
	appLog.Info("shutdown", "", "restaurant-svc stopped")
}
