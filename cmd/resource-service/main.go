package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"resourcehub/internal/assistant"
	"resourcehub/internal/config"
	listinghandler "resourcehub/internal/listings/handler"
	"resourcehub/internal/listings/repository"
	listingservice "resourcehub/internal/listings/service"
	"resourcehub/internal/listings/validator"
	"resourcehub/internal/policy"
	"resourcehub/internal/vision"
	"resourcehub/pkg/client"
	"resourcehub/pkg/contracts"
	"resourcehub/pkg/kafka"
	"resourcehub/pkg/logger"
	"resourcehub/pkg/middleware"
	"resourcehub/pkg/token"
)

func main() {
	cfg := config.Load("resource-service")
	log := cfg.Log
	log.Info("Starting resource service")

	mongoClient, err := client.NewMongoClient(log, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(context.Background())

	producer := initProducer(cfg, log)
	if producer != nil {
		defer producer.Close()
	}

	listingRepo := repository.NewMongoListingRepository(
		mongoClient,
		cfg.MongoDatabaseName,
		cfg.MongoReadTimeout,
		cfg.MongoWriteTimeout,
	)
	listingSvc := listingservice.NewListingService(
		listingRepo,
		validator.NewListingValidator(),
		token.NewManager(cfg.JWTSecret, cfg.TokenTTL),
		producer,
		log,
		cfg.BcryptCost,
	)

	server, rateLimiter := setupHTTPServer(cfg, listingRepo, listingSvc, producer, log)
	defer rateLimiter.Stop()

	run(cfg, server, log)
}

func initProducer(cfg *config.Config, log *logger.Logger) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info("Kafka brokers not configured, event publishing disabled")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, "resource-service", log)
	if err != nil {
		log.Fatal("Failed to configure Kafka producer", "error", err)
	}
	return producer
}

func setupHTTPServer(
	cfg *config.Config,
	listingRepo repository.ListingRepository,
	listingSvc listingservice.ListingService,
	producer *kafka.Producer,
	log *logger.Logger,
) (*http.Server, *middleware.IPRateLimiter) {
	apiHandlers := []contracts.Handler{
		listinghandler.NewListingHandler(listingSvc, log),
		policy.NewPolicyHandler(policy.NewPolicyService(listingRepo, producer, log), log),
	}

	healthHandler := listinghandler.NewHealthHandler(listingSvc, log)
	if assistantSvc := newAssistantService(cfg, listingSvc, log); assistantSvc != nil {
		apiHandlers = append(apiHandlers, assistant.NewAssistantHandler(assistantSvc, log))
		healthHandler.WithAssistantProbe(func(ctx context.Context) error {
			_, err := assistantSvc.Session(ctx)
			return err
		})
	}
	if h := visionHandler(cfg, listingSvc, log); h != nil {
		apiHandlers = append(apiHandlers, h)
	}

	healthRouter := httprouter.New()
	healthHandler.RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(log)(healthHTTPHandler)

	apiRouter := httprouter.New()
	for _, h := range apiHandlers {
		h.RegisterRoutes(apiRouter)
	}

	rateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	// Middleware order: Recovery → Logging → CORS → MaxSize → ContentType → RateLimit → Timeout → Router
	var apiHTTPHandler http.Handler = apiRouter
	apiHTTPHandler = middleware.RequestTimeout(cfg.RequestTimeout)(apiHTTPHandler)
	apiHTTPHandler = middleware.RateLimit(rateLimiter)(apiHTTPHandler)
	apiHTTPHandler = middleware.ContentTypeValidation(log)(apiHTTPHandler)
	apiHTTPHandler = middleware.MaxRequestSize(int64(cfg.MaxRequestSize))(apiHTTPHandler)
	apiHTTPHandler = corsHandler.Handler(apiHTTPHandler)
	apiHTTPHandler = middleware.RequestLogging(log)(apiHTTPHandler)
	apiHTTPHandler = middleware.Recovery(log)(apiHTTPHandler)

	mux := http.NewServeMux()
	mux.Handle("/health", healthHTTPHandler)
	mux.Handle("/ready", healthHTTPHandler)
	mux.Handle("/", apiHTTPHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	log.Info("HTTP server configured", "port", cfg.Port)
	return server, rateLimiter
}

func newAssistantService(cfg *config.Config, finder assistant.ResourceFinder, log *logger.Logger) assistant.AssistantService {
	if cfg.AssistantURL == "" {
		log.Info("Assistant not configured, session/message endpoints disabled")
		return nil
	}

	nlu := assistant.NewWatsonClient(cfg.AssistantURL, cfg.AssistantAPIKey, cfg.AssistantID, cfg.AssistantTimeout)
	log.Info("Assistant endpoints configured", "assistant_id", cfg.AssistantID)
	return assistant.NewAssistantService(nlu, finder, log, cfg.SuppliesConfidence)
}

func visionHandler(cfg *config.Config, queue vision.QueueUpdater, log *logger.Logger) contracts.Handler {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Warn("AWS configuration unavailable, head-count endpoint disabled", "error", err)
		return nil
	}

	counter := vision.NewRekognitionHeadCounter(rekognition.NewFromConfig(awsCfg), float32(cfg.VisionMinConfidence))
	svc := vision.NewVisionService(counter, queue, log)
	log.Info("Vision endpoint configured", "region", cfg.AWSRegion, "min_confidence", cfg.VisionMinConfidence)
	return vision.NewVisionHandler(svc, log)
}

func run(cfg *config.Config, server *http.Server, log *logger.Logger) {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", "address", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)
		gracefulShutdown(cfg, server, log)
	}
}

func gracefulShutdown(cfg *config.Config, server *http.Server, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed, forcing close", "error", err)
		if err := server.Close(); err != nil {
			log.Error("Forced close failed", "error", err)
		}
	}

	log.Info("Server stopped")
}
