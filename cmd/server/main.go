package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"safecity/internal/config"
	"safecity/internal/handlers"
	"safecity/internal/middleware"
	"safecity/internal/repositories/mongodb"
	"safecity/internal/services"
	"safecity/internal/utils"
	"safecity/pkg/cache"
	"safecity/pkg/database"
	"safecity/pkg/logger"
	"safecity/pkg/maps"
	"safecity/pkg/sms"
	"safecity/pkg/websocket"
	"safecity/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(&database.Config{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	smsProvider, err := buildSMSProvider(cfg.SMS)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize SMS provider")
	}

	mapsProvider, err := buildMapsProvider(cfg.Maps)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize maps provider")
	}

	hub := websocket.NewHub()
	go hub.Run()

	reportRepo := mongodb.NewReportRepository(db.Database)
	contactRepo := mongodb.NewContactRepository(db.Database)
	userRepo := mongodb.NewUserRepository(db.Database)
	alertRepo := mongodb.NewSOSAlertRepository(db.Database)

	authService := services.NewAuthService(userRepo, redisCache, log, cfg.Auth)
	reportService := services.NewReportService(reportRepo, hub, log)
	contactService := services.NewContactService(contactRepo, redisCache, log)
	sosService := services.NewSOSService(contactRepo, alertRepo, smsProvider, hub, log, smsFromNumber(cfg.SMS), cfg.App.Timezone)
	routeService := services.NewRouteService(mapsProvider, reportRepo, log)

	h := &routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService, cfg.Auth),
		Report:  handlers.NewReportHandler(reportService),
		Contact: handlers.NewContactHandler(contactService),
		SOS:     handlers.NewSOSHandler(sosService),
		Route:   handlers.NewRouteHandler(routeService),
		WS:      handlers.NewWSHandler(hub),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS([]string{cfg.App.BaseURL}))

	rateLimiter := middleware.RateLimit(redisCache, utils.PublicRateLimit, utils.PublicRateLimitWindow, log)

	routes.Setup(router, h, authService, cfg.Auth, rateLimiter, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.App.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}

	log.Info("Server stopped")
}

func buildSMSProvider(cfg *config.SMSConfig) (sms.SMSProvider, error) {
	switch cfg.Provider {
	case "aws_sns":
		return sms.NewAWSSNSProvider(cfg.AWS.Region)
	case "twilio":
		return sms.NewTwilioProvider(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber), nil
	default:
		return nil, fmt.Errorf("unknown SMS provider: %s", cfg.Provider)
	}
}

func buildMapsProvider(cfg *config.MapsConfig) (maps.MapsProvider, error) {
	switch cfg.Provider {
	case "google":
		return maps.NewGoogleMapsProvider(cfg.GoogleAPIKey)
	case "mapbox":
		return maps.NewMapboxProvider(cfg.MapboxAccessToken), nil
	default:
		return nil, fmt.Errorf("unknown maps provider: %s", cfg.Provider)
	}
}

func smsFromNumber(cfg *config.SMSConfig) string {
	if cfg.DefaultFrom != "" {
		return cfg.DefaultFrom
	}
	return cfg.Twilio.FromNumber
}
