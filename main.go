package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	api "meetup-backend/cmd/api"
	authdomain "meetup-backend/internal/auth/domain"
	authRepo "meetup-backend/internal/auth/repository"
	authUsecase "meetup-backend/internal/auth/usecase"
	"meetup-backend/internal/notification"
	resdomain "meetup-backend/internal/reservation/domain"
	reservationRepo "meetup-backend/internal/reservation/repository"
	reservationUsecase "meetup-backend/internal/reservation/usecase"
	resultdomain "meetup-backend/internal/result/domain"
	resultRepo "meetup-backend/internal/result/repository"
	resultUsecase "meetup-backend/internal/result/usecase"
	"meetup-backend/pkg/config"
	"meetup-backend/pkg/database"
	"meetup-backend/pkg/fcm"
	"meetup-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.PushToken{},
		&resdomain.Reservation{},
		&resdomain.Participant{},
		&resultdomain.Result{},
	); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	pushTokenRepository := authRepo.NewPushTokenRepository(db)
	reservationRepository := reservationRepo.NewGormReservationRepository(db)
	resultRepository := resultRepo.NewGormResultRepository(db)

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, pushTokenRepository, cfg)
	reservationUsecaseInstance := reservationUsecase.NewReservationUsecase(reservationRepository)
	resultUsecaseInstance := resultUsecase.NewResultUsecase(resultRepository, reservationRepository)

	// Notification scheduler needs an FCM client; without credentials the
	// API still runs, just without pushes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			zlog.Warn("failed to initialize FCM client, push notifications disabled", zap.Error(err))
		} else {
			var deduper notification.Deduper
			if cfg.RedisURL != "" {
				redisDeduper, err := notification.NewRedisDeduper(ctx, cfg.RedisURL, cfg.DedupTTL)
				if err != nil {
					zlog.Warn("failed to connect to redis, falling back to in-memory dedup", zap.Error(err))
					deduper = notification.NewMemoryDeduper()
				} else {
					defer redisDeduper.Close()
					deduper = redisDeduper
				}
			} else {
				deduper = notification.NewMemoryDeduper()
			}

			dispatcher := notification.NewDispatcher(notification.NewFCMPusher(fcmClient), deduper, zlog)
			scheduler := notification.NewScheduler(reservationRepository, deduper, dispatcher, zlog, cfg.SchedulerInterval)
			go scheduler.Run(ctx)
		}
	} else {
		zlog.Warn("no Firebase credentials configured, notification scheduler disabled")
	}

	// Initialize HTTP handler and start server
	handler := api.NewHandler(authUsecaseInstance, reservationUsecaseInstance, resultUsecaseInstance)

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := handler.Start(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
