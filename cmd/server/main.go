package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kickoff-hub/service-users/internal/adapter"
	"github.com/kickoff-hub/service-users/internal/application"
	"github.com/kickoff-hub/service-users/internal/config"
	"github.com/kickoff-hub/service-users/internal/domain/profile"
	"github.com/kickoff-hub/service-users/internal/domain/subscription"
	userEvents "github.com/kickoff-hub/service-users/internal/events"
	"github.com/kickoff-hub/service-users/internal/handler"
	"github.com/kickoff-hub/service-users/internal/metrics"
	"github.com/kickoff-hub/service-users/internal/repository"
	"github.com/kickoff-hub/service-users/internal/repository/memory"
	"github.com/kickoff-hub/service-users/pkg/database"
	"github.com/kickoff-hub/service-users/pkg/kafka"
	"github.com/kickoff-hub/service-users/pkg/logger"
	"github.com/kickoff-hub/service-users/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const serviceName = "service-users"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreDriver),
		zap.Strings("brokers", cfg.KafkaConfig.Brokers),
	)

	// Initialize store
	var (
		profileRepo profile.ProfileRepository
		subRepo     subscription.SubscriptionRepository
		storePinger handler.Pinger
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		profileRepo = memory.NewProfileRepository()
		subRepo = memory.NewSubscriptionRepository()
		zapLogger.Warn("using in-memory store; data is lost on restart")
	default:
		dbConfig := database.PostgresConfig{
			Host:     cfg.DBConfig.Host,
			Port:     cfg.DBConfig.Port,
			User:     cfg.DBConfig.User,
			Password: cfg.DBConfig.Password,
			DBName:   cfg.DBConfig.DBName,
			SSLMode:  cfg.DBConfig.SSLMode,
		}

		db, err := database.Connect(dbConfig, zapLogger)
		if err != nil {
			zapLogger.Fatal("failed to connect to database", zap.Error(err))
		}

		// Run database migrations
		if cfg.AppEnv == "development" {
			if err := db.AutoMigrate(&repository.ProfileModel{}, &repository.SubscriptionModel{}); err != nil {
				zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
			}
			zapLogger.Info("database migration completed (dev auto-migrate)")
		} else {
			if err := database.RunMigrations(dbConfig.DatabaseURL(), "migrations", zapLogger); err != nil {
				zapLogger.Fatal("failed to run migrations", zap.Error(err))
			}
		}

		profileRepo = repository.NewGormProfileRepository(db)
		subRepo = repository.NewGormSubscriptionRepository(db)
		storePinger = handler.PingFunc(func(ctx context.Context) error { return database.Ping(ctx, db) })
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
	defer kafkaProducer.Close()

	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	// Replies keep flowing until in-flight requests have drained.
	replyCtx, replyCancel := context.WithCancel(context.Background())
	defer replyCancel()

	// Initialize competitions adapter (mock for development)
	var competitions adapter.CompetitionsAdapter
	if cfg.CompetitionsMock {
		competitions = adapter.NewMockCompetitionsAdapter(zapLogger)
		zapLogger.Warn("using mock competitions adapter")
	} else {
		// Each instance reads every reply and keeps only its own, so the
		// reply consumer group is unique per instance.
		replyConsumer := kafka.NewLatestConsumer(cfg.KafkaConfig.Brokers, cfg.ReplyGroupID, cfg.Topics.UserReplies, zapLogger)
		client := kafka.NewClient(kafkaProducer, replyConsumer, kafka.ClientConfig{
			Source:     serviceName,
			ReplyTopic: cfg.Topics.UserReplies,
			Timeout:    cfg.KafkaConfig.RequestTimeout,
		}, zapLogger)
		defer client.Close()

		go func() {
			zapLogger.Info("starting competitions reply consumer",
				zap.String("topic", cfg.Topics.UserReplies),
				zap.String("group", cfg.ReplyGroupID),
			)
			if err := client.Start(replyCtx); err != nil && replyCtx.Err() == nil {
				zapLogger.Error("competitions reply consumer failed", zap.Error(err))
			}
		}()

		competitions = adapter.NewKafkaCompetitionsAdapter(client, cfg.Topics.CompetitionsRequests, collector, zapLogger)
	}

	// Initialize application services
	services := userEvents.Services{
		Profiles:      application.NewProfileService(profileRepo, zapLogger),
		Subscriptions: application.NewSubscriptionService(subRepo, profileRepo, competitions, zapLogger),
		Queries:       application.NewSubscriptionQueryService(subRepo, profileRepo, competitions, zapLogger),
	}

	// Initialize Kafka request server
	requestGroupID := cfg.KafkaConfig.GroupPrefix + "users-service"
	requestConsumer := kafka.NewConsumer(cfg.KafkaConfig.Brokers, requestGroupID, cfg.Topics.UserRequests, zapLogger)
	defer requestConsumer.Close()

	server, err := kafka.NewServer(requestConsumer, kafkaProducer, kafka.ServerConfig{
		Source:  serviceName,
		Workers: cfg.WorkerPoolSize,
	}, userEvents.EncodeError, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to create request server", zap.Error(err))
	}
	requests := userEvents.NewRequestConsumer(server, services, collector, zapLogger)

	go func() {
		zapLogger.Info("starting user request consumer", zap.String("topic", cfg.Topics.UserRequests))
		if err := requests.Start(consumerCtx); err != nil && consumerCtx.Err() == nil {
			zapLogger.Error("user request consumer failed", zap.Error(err))
		}
	}()

	// Setup Gin router for the ops surface
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.LoggerMiddleware(zapLogger))
	handler.NewOpsHandler(serviceName, storePinger, registry).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down " + serviceName + "...")

	// Stop consuming, then let in-flight requests finish and reply.
	consumerCancel()
	if err := server.Close(10 * time.Second); err != nil {
		zapLogger.Warn("request workers did not drain in time", zap.Error(err))
	}
	replyCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info(serviceName + " stopped")
}
