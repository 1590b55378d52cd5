package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/gap"
	"github.com/civiclens/backend/pkg/logger"
)

type TopicsHandler struct {
	service *gap.Service
}

func NewTopicsHandler(service *gap.Service) *TopicsHandler {
	return &TopicsHandler{service: service}
}

// Missing serves the youth-vs-politician comparison table. The service
// already degrades live → curated; a panic anywhere below degrades once
// more to the emergency table rather than a 500.
func (h *TopicsHandler) Missing(c *fiber.Ctx) error {
	result := h.safeMissingTopics(c.Context())

	return okWithMeta(c, result.Comparison, fiber.Map{
		"data_source": result.DataSource,
		"sources":     result.Sources,
		"note":        result.Note,
	})
}

func (h *TopicsHandler) safeMissingTopics(ctx context.Context) (result gap.MissingTopicsResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Missing-topics pipeline panicked", zap.Any("panic", r))
			result = h.service.EmergencyTopics()
		}
	}()
	return h.service.MissingTopics(ctx)
}

func (h *TopicsHandler) Youth(c *fiber.Ctx) error {
	rows := h.service.YouthTopics()
	return okWithMeta(c, rows, fiber.Map{"count": len(rows)})
}

// Analysis runs the full scrape-and-score cycle over both corpora.
func (h *TopicsHandler) Analysis(c *fiber.Ctx) error {
	analysis := h.service.Analyze(c.Context())
	return okWithMeta(c, analysis, fiber.Map{
		"data_points": analysis.ReliabilityNotes.DataPoints,
	})
}

// streamInterval is how often the live websocket pushes a fresh table.
const streamInterval = 30 * time.Second

// StreamMissing pushes the missing-topics table over a websocket: one
// snapshot on connect, then periodic updates. A client may send
// {"type":"refresh"} to force an immediate re-fetch.
func (h *TopicsHandler) StreamMissing(conn *websocket.Conn) {
	logger.Info("Topics stream connected")
	defer func() {
		conn.Close()
		logger.Info("Topics stream closed")
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresh := make(chan struct{}, 1)

	// Reader goroutine: client refresh requests, and connection teardown
	// detection. Any read error ends the stream.
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

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	if err := h.pushSnapshot(ctx, conn); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-refresh:
		}
		if err := h.pushSnapshot(ctx, conn); err != nil {
			logger.Debug("Topics stream write failed", zap.Error(err))
			return
		}
	}
}

func (h *TopicsHandler) pushSnapshot(ctx context.Context, conn *websocket.Conn) error {
	result := h.safeMissingTopics(ctx)
	return conn.WriteJSON(fiber.Map{
		"type":        "snapshot",
		"comparison":  result.Comparison,
		"data_source": result.DataSource,
		"note":        result.Note,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}
