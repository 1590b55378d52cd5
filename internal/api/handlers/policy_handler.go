package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/llm"
	"github.com/civiclens/backend/internal/policy"
	"github.com/civiclens/backend/internal/scraper"
	"github.com/civiclens/backend/internal/storage/models"
	"github.com/civiclens/backend/internal/storage/sqlite"
	"github.com/civiclens/backend/pkg/logger"
)

type PolicyHandler struct {
	service *policy.Service
	scraper *scraper.Client
}

func NewPolicyHandler(service *policy.Service, sc *scraper.Client) *PolicyHandler {
	return &PolicyHandler{service: service, scraper: sc}
}

func cards(records []*models.PolicyRecord) []models.PolicyCard {
	out := make([]models.PolicyCard, 0, len(records))
	for _, r := range records {
		out = append(out, r.Card())
	}
	return out
}

// Recent serves policies published in the lookback window, refreshing the
// curated set first when the store has gone stale.
func (h *PolicyHandler) Recent(c *fiber.Ctx) error {
	daysBack := c.QueryInt("days", 30)
	if daysBack <= 0 || daysBack > 365 {
		return fail(c, fiber.StatusBadRequest, "days must be between 1 and 365")
	}

	records, err := h.service.RecentPolicies(daysBack)
	if err != nil {
		logger.Error("Failed to list recent policies", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to load policies")
	}

	return okWithMeta(c, cards(records), fiber.Map{"count": len(records)})
}

func (h *PolicyHandler) Refresh(c *fiber.Ctx) error {
	daysBack := c.QueryInt("days", 30)

	result, err := h.service.RefreshCurated(daysBack)
	if err != nil {
		logger.Error("Curated refresh failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to refresh policies")
	}

	return ok(c, result)
}

// RefreshAll runs the live scrape-and-summarize pipeline across the
// government portals. Slow: each new item may call the language model.
func (h *PolicyHandler) RefreshAll(c *fiber.Ctx) error {
	daysBack := c.QueryInt("days", 7)

	processed, err := h.service.ProcessWeekly(c.Context(), daysBack)
	if err != nil {
		logger.Error("Live refresh failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to process live updates")
	}

	return okWithMeta(c, fiber.Map{"processed": processed}, fiber.Map{
		"data_source": "live_scraped",
	})
}

// Analyze runs gap analysis over caller-supplied policy text, or over the
// text extracted from a caller-supplied URL.
func (h *PolicyHandler) Analyze(c *fiber.Ctx) error {
	var req struct {
		Text     string `json:"text"`
		URL      string `json:"url"`
		Title    string `json:"title"`
		Ministry string `json:"ministry"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	text := strings.TrimSpace(req.Text)
	if text == "" && req.URL != "" {
		extracted, err := h.service.ScrapePolicyText(c.Context(), req.URL)
		if err != nil {
			logger.Warn("Policy page fetch failed", zap.String("url", req.URL), zap.Error(err))
			return fail(c, fiber.StatusBadGateway, "Could not fetch the policy page")
		}
		text = extracted
	}
	if text == "" {
		return fail(c, fiber.StatusBadRequest, "Either text or url is required")
	}

	analysis, err := h.service.AnalyzeText(c.Context(), text, llm.PolicyMetadata{
		Title:    req.Title,
		Ministry: req.Ministry,
	})
	if err != nil {
		logger.Error("Policy analysis failed", zap.Error(err))
		return fail(c, fiber.StatusServiceUnavailable, "Analysis is currently unavailable")
	}

	return ok(c, analysis)
}

func (h *PolicyHandler) Search(c *fiber.Ctx) error {
	text := strings.TrimSpace(c.Query("q"))
	ministry := strings.TrimSpace(c.Query("ministry"))
	if text == "" && ministry == "" {
		return fail(c, fiber.StatusBadRequest, "Provide q or ministry")
	}

	records, err := h.service.Search(text, ministry, 50)
	if err != nil {
		logger.Error("Policy search failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Search failed")
	}

	return okWithMeta(c, cards(records), fiber.Map{"count": len(records)})
}

func (h *PolicyHandler) Ministries(c *fiber.Ctx) error {
	ministries, err := h.service.Ministries()
	if err != nil {
		logger.Error("Ministry listing failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to list ministries")
	}
	return ok(c, ministries)
}

func (h *PolicyHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Statistics()
	if err != nil {
		logger.Error("Policy stats failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to compute statistics")
	}
	return ok(c, stats)
}

func (h *PolicyHandler) Get(c *fiber.Ctx) error {
	record, err := h.service.Policy(c.Params("id"))
	if errors.Is(err, sqlite.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "Policy not found")
	}
	if err != nil {
		logger.Error("Policy lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to load policy")
	}
	return ok(c, record.Card())
}

func (h *PolicyHandler) Gaps(c *fiber.Ctx) error {
	record, gaps, err := h.service.Gaps(c.Params("id"))
	if errors.Is(err, sqlite.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "Policy not found")
	}
	if err != nil {
		logger.Error("Policy gaps lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to load policy gaps")
	}

	return ok(c, fiber.Map{
		"policy_id": record.ID,
		"title":     record.Title,
		"gaps":      gaps,
	})
}

// SourceStatus probes each government portal and reports reachability.
func (h *PolicyHandler) SourceStatus(c *fiber.Ctx) error {
	type sourceStatus struct {
		URL        string `json:"url"`
		Reachable  bool   `json:"reachable"`
		StatusCode int    `json:"status_code,omitempty"`
		LatencyMS  int64  `json:"latency_ms,omitempty"`
		Error      string `json:"error,omitempty"`
	}

	statuses := make(map[string]sourceStatus, len(scraper.PolicySources))
	for name, url := range scraper.PolicySources {
		code, latency, err := h.scraper.CheckSource(c.Context(), url)
		status := sourceStatus{
			URL:        url,
			Reachable:  err == nil && code < 400,
			StatusCode: code,
			LatencyMS:  latency.Milliseconds(),
		}
		if err != nil {
			status.Error = err.Error()
		}
		statuses[name] = status
	}

	return okWithMeta(c, statuses, fiber.Map{
		"checked_at": time.Now().UTC().Format(time.RFC3339),
	})
}
