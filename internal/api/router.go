package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/civiclens/backend/internal/api/handlers"
	"github.com/civiclens/backend/internal/auth"
	"github.com/civiclens/backend/internal/gap"
	"github.com/civiclens/backend/internal/metrics"
	"github.com/civiclens/backend/internal/opinions"
	"github.com/civiclens/backend/internal/policy"
	"github.com/civiclens/backend/internal/rti"
	"github.com/civiclens/backend/internal/scraper"
	"github.com/civiclens/backend/internal/storage/sqlite"
)

// Deps carries the wired services into route registration.
type Deps struct {
	Policies *policy.Service
	Topics   *gap.Service
	Opinions *opinions.Service
	RTI      *rti.Service
	Auth     *auth.Service
	Store    *sqlite.Client
	Scraper  *scraper.Client
}

// RegisterRoutes mounts the full /api/v1 surface.
func RegisterRoutes(app *fiber.App, deps Deps) {
	policyHandler := handlers.NewPolicyHandler(deps.Policies, deps.Scraper)
	topicsHandler := handlers.NewTopicsHandler(deps.Topics)
	youthHandler := handlers.NewYouthHandler(deps.Opinions)
	rtiHandler := handlers.NewRTIHandler(deps.RTI)
	authHandler := handlers.NewAuthHandler(deps.Auth)
	forumHandler := handlers.NewForumHandler(deps.Store)

	api := app.Group("/api/v1", observe)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})
	api.Get("/ready", func(c *fiber.Ctx) error {
		if err := deps.Store.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})
	api.Get("/metrics", metrics.MetricsHandler())

	policies := api.Group("/policies")
	policies.Get("/recent", policyHandler.Recent)
	policies.Post("/refresh", policyHandler.Refresh)
	policies.Post("/refresh-all", policyHandler.RefreshAll)
	policies.Post("/analyze", policyHandler.Analyze)
	policies.Get("/search", policyHandler.Search)
	policies.Get("/ministries", policyHandler.Ministries)
	policies.Get("/stats", policyHandler.Stats)
	policies.Get("/sources/status", policyHandler.SourceStatus)
	policies.Get("/:id", policyHandler.Get)
	policies.Get("/:id/gaps", policyHandler.Gaps)

	topics := api.Group("/topics")
	topics.Get("/missing", topicsHandler.Missing)
	topics.Get("/youth", topicsHandler.Youth)
	topics.Get("/analysis", topicsHandler.Analysis)
	topics.Use("/missing/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	topics.Get("/missing/live", websocket.New(topicsHandler.StreamMissing))

	youth := api.Group("/youth")
	youth.Get("/opinions", youthHandler.Opinions)
	youth.Get("/sentiment", youthHandler.Sentiment)
	youth.Use("/opinions/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	youth.Get("/opinions/live", websocket.New(youthHandler.StreamOpinions))

	rtiGroup := api.Group("/rti")
	rtiGroup.Post("/complaints", rtiHandler.Submit)
	rtiGroup.Get("/complaints/:id", rtiHandler.GetComplaint)
	rtiGroup.Post("/complaints/:id/generate", rtiHandler.Generate)
	rtiGroup.Get("/requests/:id", rtiHandler.GetRequest)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authHandler.RequireAuth, authHandler.Me)

	forum := api.Group("/forum")
	forum.Get("/ideas", forumHandler.ListIdeas)
	forum.Get("/ideas/top", forumHandler.TopIdeas)
	forum.Post("/ideas", authHandler.RequireAuth, forumHandler.CreateIdea)
	forum.Post("/ideas/:id/vote", authHandler.RequireAuth, forumHandler.Vote)
	forum.Get("/ideas/:id/comments", forumHandler.ListComments)
	forum.Post("/ideas/:id/comments", authHandler.RequireAuth, forumHandler.CreateComment)
}

// observe records per-endpoint latency and status counts.
func observe(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	endpoint := c.Route().Path
	metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.RequestTotal.WithLabelValues(endpoint, strconv.Itoa(c.Response().StatusCode())).Inc()
	return err
}
