package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/njprem/tokyo_attractions_backend/internal/config"
	"github.com/njprem/tokyo_attractions_backend/internal/logging"
	"github.com/njprem/tokyo_attractions_backend/internal/media"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/minio"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/postgres"
	"github.com/njprem/tokyo_attractions_backend/internal/service"
	transporthttp "github.com/njprem/tokyo_attractions_backend/internal/transport/http"
	"github.com/njprem/tokyo_attractions_backend/internal/transport/mail"
)

const serviceName = "tokyo-attractions"

func main() {
	cfg := config.Load()

	logger, closer, err := logging.New(logging.Options{
		Service:      serviceName,
		Level:        cfg.LogLevel,
		LogstashAddr: cfg.LogstashTCPAddr,
	})
	if err != nil {
		logrus.WithError(err).Fatal("init logger")
	}
	defer closer.Close()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("connect database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.WithError(err).Fatal("migrate database")
	}

	attractionRepo := postgres.NewAttractionRepo(db)
	bookingRepo := postgres.NewBookingRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	userRepo := postgres.NewUserRepo(db)
	txManager := postgres.NewTxManager(db)

	var notifier ports.BookingNotifier
	if cfg.MailEnabled() {
		notifier = mail.NewBookingMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		logger.Info("SMTP not configured; booking confirmations disabled")
	}

	ratingService := service.NewRatingService(reviewRepo, attractionRepo)
	attractionService := service.NewAttractionService(attractionRepo)
	reviewService := service.NewReviewService(reviewRepo, userRepo, ratingService, txManager)
	bookingService := service.NewBookingService(bookingRepo, attractionRepo, service.BookingServiceConfig{
		RecomputePrice: cfg.BookingRecomputePrice,
		Notifier:       notifier,
		Logger:         logger,
	})

	var imageService *service.ReviewImageService
	if cfg.StorageEnabled() {
		client, err := minio.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			logger.WithError(err).Fatal("init minio client")
		}
		storage := minio.NewStorage(client, cfg.MinIOBucketReviews, cfg.MinIOPublicURL)
		if err := storage.EnsureBucket(ctx); err != nil {
			logger.WithError(err).Fatal("ensure review bucket")
		}
		processor := media.NewImageProcessor(cfg.ReviewImageMaxBytes, cfg.ReviewImageMaxDimension, cfg.ReviewImageMaxPixels)
		imageService = service.NewReviewImageService(storage, processor)
	} else {
		logger.Info("MinIO not configured; review image uploads disabled")
	}

	metrics := transporthttp.NewMetrics("tokyo_attractions")
	metrics.RegisterDBStats(db.DB, "postgres")

	e := transporthttp.NewRouter(transporthttp.RouterConfig{
		AllowOrigins: cfg.AllowOrigins,
		Logger:       logger,
		Metrics:      metrics,
	})
	transporthttp.RegisterHealth(e, db, attractionService, logger)
	transporthttp.RegisterSwagger(e)
	transporthttp.RegisterAttractions(e, attractionService, ratingService, logger)
	transporthttp.RegisterBookings(e, bookingService, logger)
	transporthttp.RegisterReviews(e, reviewService, imageService, logger)
	if cfg.EnableSeedRoutes {
		seedService := service.NewSeedService(attractionRepo, reviewRepo, userRepo, ratingService, txManager)
		transporthttp.RegisterSeed(e, seedService, logger)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		logger.WithField("signal", s.String()).Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.WithField("addr", srv.Addr).Info("starting server")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("server stopped")
	}
	if err := <-shutdownErr; err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
		return
	}
	logger.Info("server stopped")
}
