package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"amorlias/internal/cache"
	"amorlias/internal/config"
	"amorlias/internal/email/noop"
	sesemail "amorlias/internal/email/ses"
	"amorlias/internal/gst"
	"amorlias/internal/handler"
	"amorlias/internal/label"
	"amorlias/internal/label/pdf"
	"amorlias/internal/logger"
	"amorlias/internal/metrics"
	"amorlias/internal/notify"
	"amorlias/internal/port"
	"amorlias/internal/repository/postgres"
	"amorlias/internal/router"
	"amorlias/internal/service"
	s3storage "amorlias/internal/storage/s3"
)

// @title Amorlias API
// @version 1.0
// @description Storefront backend: GST calculation, shipping labels, catalog, inventory and point of sale.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.New(cfg.Log.Format, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	orderRepo := postgres.NewOrderRepo(db)
	productRepo := postgres.NewProductRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)
	hsnRepo := postgres.NewHSNRepo(db)
	statsRepo := postgres.NewStatsRepo(db)
	userRepo := postgres.NewUserRepo(db)

	hsnEntries, err := hsnRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load HSN master: %w", err)
	}
	hsnLookup := gst.NewHSNLookup(hsnEntries)
	lg.Info().Int("entries", hsnLookup.Len()).Msg("HSN master loaded")

	checks := map[string]handler.HealthCheck{"database": handler.DBCheck(db)}

	// Redis is optional: without it settings are read through and the
	// dispatcher assumes a single instance.
	var (
		settingsCache port.SettingsCache = cache.Nop{}
		locker        port.Locker        = cache.LocalLocker{}
	)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}
		settingsCache = cache.NewSettingsCache(rdb, cfg.Redis.SettingsTTL)
		locker = cache.NewLocker(rdb)
		checks["redis"] = handler.RedisCheck(rdb)
		lg.Info().Str("addr", cfg.Redis.Addr).Msg("redis enabled")
	}

	var storage port.ObjectStorage
	if cfg.Label.ArchiveEnabled || cfg.Upload.Enabled {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	sender, err := newEmailSender(ctx, cfg, lg)
	if err != nil {
		return err
	}

	m := metrics.New(prometheus.NewRegistry())

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	settingsSvc := service.NewSettingsService(settingsRepo, settingsCache, lg)
	orderSvc := service.NewOrderService(orderRepo, notificationRepo, settingsSvc, lg)
	labelSvc := service.NewLabelService(
		orderRepo, settingsSvc, label.NewBuilder(), pdf.NewRenderer(), storage, m,
		service.LabelArchiveConfig{
			Enabled:       cfg.Label.ArchiveEnabled,
			Bucket:        cfg.S3.Bucket,
			PresignExpiry: cfg.S3.PresignExpiry,
		},
		lg,
	)
	productSvc := service.NewProductService(productRepo, hsnLookup)
	inventorySvc := service.NewInventoryService(productRepo, orderRepo)
	posSvc := service.NewPOSService(productRepo, orderRepo, settingsSvc, m, cfg.POS.DefaultRegion, lg)
	notificationSvc := service.NewNotificationService(notificationRepo, notify.NewHub(), lg)
	statsSvc := service.NewStatsService(statsRepo)
	reportSvc := service.NewReportService(orderRepo, settingsSvc)
	userSvc := service.NewUserService(userRepo, notificationRepo, lg)
	fileSvc := service.NewFileService(storage, service.FileUploadConfig{
		Enabled:       cfg.Upload.Enabled,
		Bucket:        cfg.S3.Bucket,
		MaxBytes:      cfg.Upload.MaxImageSizeMB << 20,
		PublicBaseURL: cfg.Upload.PublicBaseURL,
		PresignExpiry: cfg.S3.PresignExpiry,
	}, lg)

	dispatcher := service.NewNotificationDispatcher(notificationRepo, sender, locker, m, service.DispatcherConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
	}, lg)
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		dispatcher.Start(ctx)
	}()

	// Setup router
	r := router.Setup(authSvc, router.Handlers{
		Health:       handler.NewHealthHandler(checks),
		GST:          handler.NewGSTHandler(),
		Order:        handler.NewOrderHandler(orderSvc),
		Label:        handler.NewLabelHandler(labelSvc),
		Product:      handler.NewProductHandler(productSvc),
		Settings:     handler.NewSettingsHandler(settingsSvc),
		Inventory:    handler.NewInventoryHandler(inventorySvc),
		POS:          handler.NewPOSHandler(posSvc),
		Notification: handler.NewNotificationHandler(notificationSvc),
		Stats:        handler.NewStatsHandler(statsSvc),
		Report:       handler.NewReportHandler(reportSvc),
		User:         handler.NewUserHandler(userSvc),
		File:         handler.NewFileHandler(fileSvc),
	}, router.Options{
		Log:            lg,
		Metrics:        m,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableSwagger:  cfg.Server.Environment != "production",
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", cfg.Server.Port).Str("env", cfg.Server.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			stop()
			<-dispatcherDone
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		lg.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("http shutdown")
	}
	<-dispatcherDone
	lg.Info().Msg("server stopped")
	return nil
}

func newEmailSender(ctx context.Context, cfg *config.Config, lg zerolog.Logger) (port.EmailSender, error) {
	switch cfg.Email.Provider {
	case "ses":
		sender, err := sesemail.NewSESSender(ctx, &cfg.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		return sender, nil
	case "noop", "":
		return noop.NewNoopSender(cfg.Email.FrontendURL, lg), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}
