package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/adilbek/photogallery/internal/auth"
	"github.com/adilbek/photogallery/internal/config"
	"github.com/adilbek/photogallery/internal/logger"
	"github.com/adilbek/photogallery/internal/photo"
	"github.com/adilbek/photogallery/internal/server"
	"github.com/adilbek/photogallery/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logg, err := logger.Init()
	if err != nil {
		panic("init logger: " + err.Error())
	}
	defer logg.Sync()

	cfg, err := config.Load()
	if err != nil {
		logg.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := storage.Migrate(cfg.Postgres); err != nil {
		logg.Fatal("run migrations", zap.Error(err))
	}

	dbPool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logg.Fatal("connect postgres", zap.Error(err))
	}
	defer dbPool.Close()

	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		logg.Fatal("connect minio", zap.Error(err))
	}

	if err := storage.EnsureBucket(ctx, minioClient, cfg.MinIO.Bucket, cfg.MinIO.Region); err != nil {
		logg.Fatal("ensure bucket", zap.Error(err))
	}

	urls, err := photo.NewURLResolver(cfg.MinIO.PublicBaseURL, cfg.MinIO.Bucket)
	if err != nil {
		logg.Fatal("configure url resolver", zap.Error(err))
	}

	authService := auth.NewService(cfg.Auth)

	photoRepo := photo.NewRepository(dbPool)
	photoStore := photo.NewMinIOStore(minioClient, cfg.MinIO.Bucket)
	photoService := photo.NewService(photoRepo, photoStore, urls, logg)
	photoService.SetMaxFileSize(cfg.Upload.MaxFileSize)

	router := server.NewRouter(server.Dependencies{
		Config:       cfg,
		Logger:       logg,
		DB:           dbPool,
		ObjectStore:  minioClient,
		AuthService:  authService,
		PhotoService: photoService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logg.Info("gallery API listening", zap.String("address", cfg.Server.Address()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logg.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown error", zap.Error(err))
	}
}
