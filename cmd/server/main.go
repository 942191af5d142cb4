package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/application"
	"github.com/urbanmove/service-mobility/internal/config"
	"github.com/urbanmove/service-mobility/internal/domain/arrival"
	routeDomain "github.com/urbanmove/service-mobility/internal/domain/route"
	mobilityEvents "github.com/urbanmove/service-mobility/internal/events"
	"github.com/urbanmove/service-mobility/internal/handler"
	"github.com/urbanmove/service-mobility/internal/maps"
	"github.com/urbanmove/service-mobility/internal/platform/auth"
	"github.com/urbanmove/service-mobility/internal/platform/cache"
	"github.com/urbanmove/service-mobility/internal/platform/database"
	"github.com/urbanmove/service-mobility/internal/platform/health"
	"github.com/urbanmove/service-mobility/internal/platform/kafka"
	"github.com/urbanmove/service-mobility/internal/platform/logger"
	"github.com/urbanmove/service-mobility/internal/platform/metrics"
	"github.com/urbanmove/service-mobility/internal/platform/middleware"
	"github.com/urbanmove/service-mobility/internal/repository"
)

const serviceName = "service-mobility"

const predictionCacheTTL = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("arrivals_source", string(cfg.ArrivalsSource)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.ProfileModel{},
			&repository.RouteModel{},
			&repository.EmissionModel{},
			&repository.FavoriteModel{},
			&repository.TransportLineModel{},
			&repository.LiveArrivalModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(dbConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Sessions and prediction cache share one Redis client
	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.TTL)
	sessions := auth.NewSessionManager(jwtManager, auth.NewRedisSessionStore(redisClient))
	predictionCache := cache.NewJSONCache(redisClient, "mobility:places:", predictionCacheTTL)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	collector := metrics.NewCollector()

	mapsClient, err := maps.NewClient(cfg.MapsAPIKey, cfg.MapsTimeout, log)
	if err != nil {
		log.Fatal("failed to create maps client", zap.Error(err))
	}
	var routing routeDomain.RoutingProvider
	if mapsClient.Enabled() {
		routing = mapsClient
	}

	// Initialize repositories
	routeRepo := repository.NewGormRouteRepository(db)
	emissionRepo := repository.NewGormEmissionRepository(db)
	favoriteRepo := repository.NewGormFavoriteRepository(db)
	profileRepo := repository.NewGormProfileRepository(db)

	// Initialize application services
	estimator := routeDomain.NewEstimator(routing, routeDomain.NewAverageCostStrategy(), cfg.Policy)
	routeService := application.NewRouteService(estimator, routeRepo, kafkaProducer, collector, log)
	emissionService := application.NewEmissionService(emissionRepo, kafkaProducer, collector, log)
	favoriteService := application.NewFavoriteService(favoriteRepo, kafkaProducer, collector, log)
	placeService := application.NewPlaceService(mapsClient, predictionCache, log)
	accountService := application.NewAccountService(profileRepo, routeRepo, emissionRepo, sessions, log)
	dashboardService := application.NewDashboardService(routeRepo, emissionRepo, log)

	var arrivalService *application.ArrivalService
	if cfg.ArrivalsSource == arrival.SourceLive {
		liveRepo := repository.NewGormLiveArrivalRepository(db)

		var alerts application.AlertPublisher
		natsPublisher, err := mobilityEvents.NewNATSAlertPublisher(cfg.NATSURL, collector, log)
		if err != nil {
			log.Warn("nats unavailable, arrival alerts disabled", zap.Error(err))
		} else {
			defer natsPublisher.Close()
			alerts = natsPublisher
		}

		arrivalService = application.NewArrivalService(liveRepo, favoriteRepo, profileRepo, liveRepo, alerts, collector, log)

		// Initialize and start the arrivals feed consumer in a goroutine
		groupID := cfg.KafkaConfig.GroupPrefix + serviceName + "-arrivals"
		arrivalsConsumer := mobilityEvents.NewArrivalsConsumer(cfg.KafkaConfig.Brokers, groupID, arrivalService, log)
		defer func() { _ = arrivalsConsumer.Close() }()

		go func() {
			log.Info("starting arrivals feed consumer")
			if err := arrivalsConsumer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("arrivals feed consumer error", zap.Error(err))
			}
		}()
	} else {
		staticRepo := repository.NewGormTransportLineRepository(db)
		arrivalService = application.NewArrivalService(staticRepo, favoriteRepo, profileRepo, nil, nil, collector, log)
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.MetricsMiddleware(collector))

	// Register health check and metrics routes
	health.NewHandler(db, serviceName).RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	// Register routes
	api := &router.RouterGroup
	handler.NewRouteHandler(routeService).RegisterRoutes(api, sessions)
	handler.NewEmissionHandler(emissionService).RegisterRoutes(api, sessions)
	handler.NewFavoriteHandler(favoriteService).RegisterRoutes(api, sessions)
	handler.NewArrivalHandler(arrivalService).RegisterRoutes(api, sessions)
	handler.NewAccountHandler(accountService).RegisterRoutes(api, sessions)
	handler.NewPlaceHandler(placeService).RegisterRoutes(api)
	handler.NewDashboardHandler(dashboardService).RegisterRoutes(api)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
