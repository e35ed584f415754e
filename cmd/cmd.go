package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kenics-pageant-site/internal/backend"
	"kenics-pageant-site/internal/cache"
	"kenics-pageant-site/internal/config"
	"kenics-pageant-site/internal/data"
	"kenics-pageant-site/internal/handlers"
	"kenics-pageant-site/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Build the read cache: Redis when configured, in-process otherwise
	var readCache cache.Cache
	if cfg.Cache.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Redis connection established")
		readCache = cache.NewRedis(redisClient)
	} else {
		readCache = cache.NewMemory()
	}

	// Initialize backend client and data layer
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout())
	reader := data.NewReader(client, readCache, cfg.Cache.TTL())

	// Initialize services
	voteService := services.NewVoteService()
	paymentService := services.NewPaymentService()
	sessionService := services.NewSessionService(client)

	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	sessionService.StartCleanup(cleanupCtx, 5*time.Minute)

	// Initialize handlers
	renderer, err := handlers.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}
	pageHandler := handlers.NewPageHandler(reader, voteService, paymentService, renderer)
	registerHandler := handlers.NewRegisterHandler(sessionService, reader, voteService, renderer)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	// Routes
	r.Get("/", pageHandler.Home)
	r.Get("/health", pageHandler.Health)
	r.Get("/models", pageHandler.Models)
	r.Get("/models/{id}", pageHandler.ModelDetail)
	r.Get("/payment-complete", pageHandler.PaymentComplete)

	r.Route("/register", func(r chi.Router) {
		r.Get("/", registerHandler.ShowForm)
		r.Post("/", registerHandler.Submit)
		r.Post("/field", registerHandler.UpdateField)
		r.Post("/photos", registerHandler.UploadPhotos)
		r.Delete("/photos/{index}", registerHandler.RemovePhoto)
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("backend", cfg.Backend.BaseURL).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
