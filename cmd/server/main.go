package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auromart/internal/config"
	"auromart/internal/infra"
	"auromart/internal/repository"
	"auromart/internal/router"
	"auromart/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := infra.NewInvoiceStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise invoice store")
	}

	whatsappCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	whatsapp := infra.NewWhatsappClient(cfg)
	mailer := infra.NewMailer(cfg)
	if !whatsapp.Enabled() {
		log.Warn().Msg("WhatsApp gateway not configured, notifications stay in-app only")
	}

	// Worker handlers are wired here (composition root) so the pool has
	// access to every infrastructure dependency.
	dispatcher := worker.NewDispatcher(rdb)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	pool := worker.NewPool(rdb, cfg.WorkerPoolSize)
	pool.Register(worker.QueueNotifications, worker.NewNotificationWorker(notificationRepo, userRepo, whatsapp, whatsappCB))
	pool.Register(worker.QueueInvoices, worker.NewInvoiceWorker(invoiceRepo, orderRepo, notificationRepo, store, dispatcher, mailer.Enabled()))
	pool.Register(worker.QueueEmail, worker.NewEmailWorker(mailer, invoiceRepo, orderRepo))
	pool.Start(ctx)

	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		Notifications: notificationRepo,
		Queue:         dispatcher,
		CB:            whatsappCB,
		Interval:      time.Duration(cfg.NotificationRetryIntervalSeconds) * time.Second,
	})

	r := router.New(cfg, db, rdb, whatsappCB, store)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("auromart API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	// stop the workers and let in-flight jobs finish
	cancel()
	pool.Wait()
	_ = rdb.Close()
	log.Info().Msg("server exited")
}

// setupLogger: pretty console output in development, JSON elsewhere.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
