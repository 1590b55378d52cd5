package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/opinions"
	"github.com/civiclens/backend/pkg/logger"
)

type YouthHandler struct {
	service *opinions.Service
}

func NewYouthHandler(service *opinions.Service) *YouthHandler {
	return &YouthHandler{service: service}
}

func (h *YouthHandler) Opinions(c *fiber.Ctx) error {
	posts := h.service.FetchOpinions(c.Context())
	return okWithMeta(c, posts, fiber.Map{"count": len(posts)})
}

// Sentiment serves the aggregate trend report plus a short summary of the
// top concerns.
func (h *YouthHandler) Sentiment(c *fiber.Ctx) error {
	posts := h.service.FetchOpinions(c.Context())
	report := opinions.AnalyzeTrends(posts)
	summary := opinions.Summarize(report)

	return okWithMeta(c, fiber.Map{
		"trends":  report,
		"summary": summary,
	}, fiber.Map{"posts_analyzed": len(posts)})
}

// opinionStreamInterval is how often the live websocket pushes fresh posts.
const opinionStreamInterval = 60 * time.Second

// StreamOpinions pushes youth posts and their trend report over a
// websocket: one snapshot on connect, then periodic updates. A client may
// send {"type":"refresh"} to force an immediate re-fetch.
func (h *YouthHandler) StreamOpinions(conn *websocket.Conn) {
	logger.Info("Youth opinions stream connected")
	defer func() {
		conn.Close()
		logger.Info("Youth opinions stream closed")
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresh := make(chan struct{}, 1)

	go func() {
		defer cancel()
		for {
			var msg struct {
				Type string `json:"type"`
			}
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Type == "refresh" {
				select {
				case refresh <- struct{}{}:
				default:
				}
			}
		}
	}()

	ticker := time.NewTicker(opinionStreamInterval)
	defer ticker.Stop()

	if err := h.pushOpinions(ctx, conn); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-refresh:
		}
		if err := h.pushOpinions(ctx, conn); err != nil {
			logger.Debug("Youth opinions stream write failed", zap.Error(err))
			return
		}
	}
}

func (h *YouthHandler) pushOpinions(ctx context.Context, conn *websocket.Conn) error {
	posts := h.service.FetchOpinions(ctx)
	report := opinions.AnalyzeTrends(posts)

	return conn.WriteJSON(fiber.Map{
		"type":      "snapshot",
		"posts":     posts,
		"trends":    report,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
