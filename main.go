package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-insights-service/internal/config"
	httpapi "restaurant-insights-service/internal/http"
	"restaurant-insights-service/internal/logger"
	"restaurant-insights-service/internal/report"
	"restaurant-insights-service/internal/square"
	"restaurant-insights-service/internal/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.SquareAccessToken == "" || cfg.SquareLocationID == "" {
		// Matches the upstream dashboard behavior: the service boots
		// and each report request fails with an explicit credentials
		// error until they are configured.
		log.Warn("square credentials not configured; report requests will fail",
			zap.Bool("hasAccessToken", cfg.SquareAccessToken != ""),
			zap.Bool("hasLocationId", cfg.SquareLocationID != ""),
		)
	}

	squareClient := square.New(square.Config{
		AccessToken: cfg.SquareAccessToken,
		LocationID:  cfg.SquareLocationID,
		Environment: cfg.SquareEnvironment,
		Timeout:     cfg.SquareTimeout,
		MaxPages:    cfg.SquareMaxPages,
	}, log)

	loc := report.LoadLocation(cfg.ReportTimezone, log)
	reports := report.NewService(squareClient, report.NewKeywordClassifier(), loc, log)

	ctx := context.Background()
	var store *storage.ObjectStore
	if cfg.ObjectStoreEndpoint != "" {
		s, err := storage.NewObjectStore(ctx, storage.Config{
			Endpoint:        cfg.ObjectStoreEndpoint,
			Region:          cfg.ObjectStoreRegion,
			AccessKeyID:     cfg.ObjectStoreAccessKeyID,
			SecretAccessKey: cfg.ObjectStoreSecretAccessKey,
			Bucket:          cfg.ObjectStoreBucket,
			PublicBaseURL:   cfg.ObjectStorePublicBaseURL,
			StorageClass:    cfg.ObjectStoreStorageClass,
		})
		if err != nil {
			log.Warn("object store unavailable; exports will stream inline", zap.Error(err))
		} else {
			log.Info("export upload enabled", zap.String("bucket", cfg.ObjectStoreBucket))
			store = s
		}
	}

	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(squareClient, reports, store, loc, log, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("insights api ready", zap.String("base", "/api"))
		log.Info("insights service listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("squareEnvironment", cfg.SquareEnvironment),
			zap.String("reportTimezone", loc.String()),
		)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}
