package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/api"
	"github.com/civiclens/backend/internal/auth"
	"github.com/civiclens/backend/internal/cache/redis"
	"github.com/civiclens/backend/internal/gap"
	"github.com/civiclens/backend/internal/llm"
	"github.com/civiclens/backend/internal/metrics"
	"github.com/civiclens/backend/internal/middleware/ratelimit"
	"github.com/civiclens/backend/internal/middleware/security"
	"github.com/civiclens/backend/internal/middleware/validation"
	"github.com/civiclens/backend/internal/opinions"
	"github.com/civiclens/backend/internal/policy"
	"github.com/civiclens/backend/internal/rti"
	"github.com/civiclens/backend/internal/scraper"
	"github.com/civiclens/backend/internal/storage/sqlite"
	"github.com/civiclens/backend/pkg/config"
	appLogger "github.com/civiclens/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting CivicLens API Server")

	metrics.Init()

	store, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
	}
	defer store.Close()

	if err := store.InitSchema(); err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	var cache *redis.Client
	if cfg.Redis.Enabled {
		cache, err = redis.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	var llmClient *llm.Client
	if cfg.LLM.APIKey != "" {
		llmClient = llm.NewClient(
			cfg.LLM.APIKey,
			cfg.LLM.Model,
			cfg.LLM.Temperature,
			cfg.LLM.MaxTokens,
			cfg.LLM.TimeoutSec,
		)
	} else {
		appLogger.Warn("No LLM API key configured, using rule-based fallbacks")
	}

	scrapeClient := scraper.NewClient(
		cfg.Scraper.UserAgent,
		cfg.Scraper.TimeoutSec,
		time.Duration(cfg.Scraper.ThrottleSec)*time.Second,
		cfg.Scraper.ItemsPerSource,
	)
	liveFetcher := policy.NewLiveFetcher(scrapeClient, time.Duration(cfg.Scraper.ThrottleSec)*time.Second)

	// A nil *llm.Client must stay a nil interface, or the services would
	// call through it.
	var analyzer policy.Analyzer
	var assessor rti.Assessor
	if llmClient != nil {
		analyzer = llmClient
		assessor = llmClient
	}

	cacheTTL := time.Duration(cfg.Redis.TTLSec) * time.Second
	policyService := policy.NewService(store, analyzer, liveFetcher, scrapeClient)
	topicsService := gap.NewService(scrapeClient, cache, cacheTTL)
	opinionService := opinions.NewService(scrapeClient)
	rtiService := rti.NewService(store, assessor)
	authService := auth.NewService(store, cfg.Auth.Secret, cfg.Auth.TokenTTLDays)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(security.Headers(security.HeadersConfig{}))

	// Requests carrying a valid bearer token are limited per user;
	// everything else per client IP.
	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerMinute: 120,
		KeyFunc: func(c *fiber.Ctx) string {
			token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
			if !ok {
				return ""
			}
			userID, err := authService.VerifyToken(token)
			if err != nil {
				return ""
			}
			return userID
		},
	})
	defer limiter.Stop()
	app.Use(limiter.Middleware())
	app.Use(validation.Middleware(validation.Config{}))

	api.RegisterRoutes(app, api.Deps{
		Policies: policyService,
		Topics:   topicsService,
		Opinions: opinionService,
		RTI:      rtiService,
		Auth:     authService,
		Store:    store,
		Scraper:  scrapeClient,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
