package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin-gateway/config"
	"admin-gateway/internal/api"
	"admin-gateway/internal/broker"
	"admin-gateway/internal/reconcile"
	"admin-gateway/internal/redisclient"
	"admin-gateway/internal/service"
	"admin-gateway/internal/upstream"
	"admin-gateway/internal/util"
	"admin-gateway/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting admin gateway")

	tp, err := util.InitTracer("admin-gateway", cfg.Server.Env, cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	// Redis only caches; the gateway stays usable without it.
	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Printf("Redis unavailable, running without snapshot cache: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicAudit)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	auditPublisher := broker.NewAuditPublisher(producer)

	gateway := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	reconciler := reconcile.NewReconciler(gateway, auditPublisher)
	adminService := service.NewAdminService(gateway, redisClient, auditPublisher, reconciler, cfg.Cache.SnapshotTTL)

	ctx := context.Background()
	if !adminService.RestoreSession(ctx) && cfg.Upstream.Password != "" {
		if err := adminService.Connect(ctx, cfg.Upstream.Password); err != nil {
			log.Printf("Failed to connect to upstream API: %v", err)
		}
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	snapshotWorker := worker.NewSnapshotWorker(adminService, cfg.Cache.RefreshInterval)
	go func() {
		if err := snapshotWorker.Start(workerCtx); err != nil && err != context.Canceled {
			log.Printf("Snapshot worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(adminService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	snapshotWorker.Stop()

	log.Println("Server exited")
}
