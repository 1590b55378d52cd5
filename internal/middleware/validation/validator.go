package validation

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/civiclens/backend/pkg/logger"
)

var scriptPattern = regexp.MustCompile(`(?i)(<script|<iframe|javascript:|onerror=|onload=|onclick=)`)

type Config struct {
	MaxComplaintLength int
	MaxPolicyTextSize  int
}

// Middleware runs cheap request checks before handlers see the body:
// content type, payload shape for the text-heavy endpoints, and markup
// injection guards on user-visible text. Handlers still do their own
// semantic validation.
func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxComplaintLength == 0 {
		cfg.MaxComplaintLength = 5000
	}
	if cfg.MaxPolicyTextSize == 0 {
		cfg.MaxPolicyTextSize = 100 * 1024
	}

	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost && c.Method() != fiber.MethodPut {
			return c.Next()
		}

		if contentType := c.Get(fiber.HeaderContentType); contentType != "" &&
			!strings.Contains(contentType, fiber.MIMEApplicationJSON) {
			return reject(c, fiber.StatusUnsupportedMediaType, "Content type must be application/json")
		}

		path := c.Path()
		switch {
		case strings.HasSuffix(path, "/rti/complaints"):
			return checkComplaint(c, cfg.MaxComplaintLength)
		case strings.HasSuffix(path, "/policies/analyze"):
			return checkAnalyze(c, cfg.MaxPolicyTextSize)
		case strings.Contains(path, "/forum/"):
			return checkForumContent(c)
		}

		return c.Next()
	}
}

func checkComplaint(c *fiber.Ctx, maxLength int) error {
	var req struct {
		URL           string `json:"url"`
		ComplaintText string `json:"complaint_text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return reject(c, fiber.StatusBadRequest, "Invalid JSON format")
	}

	if req.URL != "" && !isValidURL(req.URL) {
		return reject(c, fiber.StatusBadRequest, "Invalid URL format")
	}
	if len(req.ComplaintText) > maxLength {
		return reject(c, fiber.StatusBadRequest, "Complaint text exceeds maximum length")
	}
	if scriptPattern.MatchString(req.ComplaintText) {
		logger.Warn("Markup injection attempt in complaint", zap.String("ip", c.IP()))
		return reject(c, fiber.StatusBadRequest, "Invalid complaint content")
	}

	return c.Next()
}

func checkAnalyze(c *fiber.Ctx, maxSize int) error {
	var req struct {
		Text string `json:"text"`
		URL  string `json:"url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return reject(c, fiber.StatusBadRequest, "Invalid JSON format")
	}

	if req.URL != "" && !isValidURL(req.URL) {
		return reject(c, fiber.StatusBadRequest, "Invalid URL format")
	}
	if len(req.Text) > maxSize {
		return reject(c, fiber.StatusRequestEntityTooLarge, "Policy text exceeds maximum size")
	}

	return c.Next()
}

func checkForumContent(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	// Vote bodies have no content field; nothing to check there.
	if err := c.BodyParser(&req); err != nil {
		return reject(c, fiber.StatusBadRequest, "Invalid JSON format")
	}

	if scriptPattern.MatchString(req.Content) {
		logger.Warn("Markup injection attempt in forum post", zap.String("ip", c.IP()))
		return reject(c, fiber.StatusBadRequest, "Invalid content")
	}
	if strings.ContainsRune(req.Content, '\x00') {
		return reject(c, fiber.StatusBadRequest, "Invalid content")
	}

	return c.Next()
}

func reject(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"metadata": fiber.Map{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
