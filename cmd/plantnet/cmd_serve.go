package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/plantnet/plantnet-server/internal/api"
	"github.com/plantnet/plantnet-server/internal/api/handler"
	"github.com/plantnet/plantnet-server/internal/api/metrics"
	"github.com/plantnet/plantnet-server/internal/core/ports"
	"github.com/plantnet/plantnet-server/internal/core/service"
	"github.com/plantnet/plantnet-server/internal/infrastructure/config"
	mongodb "github.com/plantnet/plantnet-server/internal/infrastructure/db/mongo"
	redisdb "github.com/plantnet/plantnet-server/internal/infrastructure/db/redis"
	"github.com/plantnet/plantnet-server/internal/infrastructure/events"
	"github.com/plantnet/plantnet-server/internal/infrastructure/mail"
	"github.com/plantnet/plantnet-server/internal/infrastructure/payment"
	"github.com/plantnet/plantnet-server/internal/infrastructure/queue"
	"github.com/plantnet/plantnet-server/internal/infrastructure/storage"
	"github.com/plantnet/plantnet-server/pkg/logger"
)

// plantnet serve: connect dependencies and run the HTTP server until SIGINT/SIGTERM.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.Production(), Env: cfg.Env})
		return serve(cmd.Context(), cfg, log)
	},
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.Session.Secret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Background workers ---
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: "plantNet",
	})
	dispatcher := queue.NewDispatcher(cfg.SMTP.Workers, mailer, log)
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	var publisher ports.OrderEventPublisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer func() { _ = kp.Close() }()
		publisher = kp
	}

	var images ports.ImageStore
	if cfg.S3.Bucket != "" {
		store, err := storage.NewS3ImageStore(ctx, storage.Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			return err
		}
		images = store
	}

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	plantRepo := mongodb.NewPlantRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	idem := redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	recorder := metrics.Recorder{}

	e := api.NewRouter(api.Dependencies{
		Sessions: service.NewSessionService(cfg.Session.Secret, cfg.Session.TTL),
		Users:    service.NewUserService(userRepo, log),
		Plants:   service.NewPlantService(plantRepo, idem, recorder, log),
		Payments: service.NewPaymentService(plantRepo, orderRepo, gateway, recorder, cfg.Stripe.Currency, log),
		Orders: service.NewOrderService(orderRepo, gateway, dispatcher, publisher, idem, recorder,
			service.OrderOptions{VerifyPayments: cfg.Stripe.VerifyOrders}, log),
		Stats:  service.NewStatsService(userRepo, plantRepo, orderRepo),
		Images: images,
		Probes: map[string]handler.Probe{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   redisdb.Ping(rdb),
		},
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
		Production:  cfg.Production(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("plantNet is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTTL)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
