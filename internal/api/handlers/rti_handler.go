package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/rti"
	"github.com/civiclens/backend/internal/storage/models"
	"github.com/civiclens/backend/internal/storage/sqlite"
	"github.com/civiclens/backend/pkg/logger"
)

type RTIHandler struct {
	service *rti.Service
}

func NewRTIHandler(service *rti.Service) *RTIHandler {
	return &RTIHandler{service: service}
}

func complaintView(c *models.Complaint) fiber.Map {
	return fiber.Map{
		"id":                c.ID,
		"url":               c.URL,
		"complaint_text":    c.ComplaintText,
		"is_government_url": c.IsGovernmentURL,
		"validation": fiber.Map{
			"status": c.ValidationStatus,
			"reason": c.ValidationReason,
		},
		"eligibility": fiber.Map{
			"eligible": c.Eligible,
			"score":    c.EligibilityScore,
			"reason":   c.EligibilityReason,
		},
		"created_at": c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func requestView(r *models.RTIRequest) fiber.Map {
	return fiber.Map{
		"id":               r.ID,
		"complaint_id":     r.ComplaintID,
		"rti_text":         r.RTIText,
		"compliance_score": r.ComplianceScore,
		"created_at":       r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Submit accepts a complaint about a government page. Invalid submissions
// are stored with their reason and returned as 200 so the caller can show
// the citizen why it was rejected.
func (h *RTIHandler) Submit(c *fiber.Ctx) error {
	var req struct {
		URL           string `json:"url"`
		ComplaintText string `json:"complaint_text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.URL) == "" || strings.TrimSpace(req.ComplaintText) == "" {
		return fail(c, fiber.StatusBadRequest, "url and complaint_text are required")
	}

	complaint, err := h.service.SubmitComplaint(c.Context(), req.URL, req.ComplaintText)
	if err != nil {
		logger.Error("Complaint submission failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to store complaint")
	}

	return respond(c, fiber.StatusCreated, complaintView(complaint), nil)
}

func (h *RTIHandler) GetComplaint(c *fiber.Ctx) error {
	complaint, err := h.service.GetComplaint(c.Params("id"))
	if errors.Is(err, sqlite.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "Complaint not found")
	}
	if err != nil {
		logger.Error("Complaint lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to load complaint")
	}
	return ok(c, complaintView(complaint))
}

// Generate drafts the RTI application for an eligible complaint.
// Regenerating replaces the previous draft for the same complaint.
func (h *RTIHandler) Generate(c *fiber.Ctx) error {
	complaintID := c.Params("id")

	request, err := h.service.GenerateRequest(c.Context(), complaintID)
	if errors.Is(err, sqlite.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "Complaint not found")
	}
	if err != nil {
		// Validation and eligibility rejections carry their reason.
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	return respond(c, fiber.StatusCreated, requestView(request), nil)
}

func (h *RTIHandler) GetRequest(c *fiber.Ctx) error {
	request, err := h.service.GetRequest(c.Params("id"))
	if errors.Is(err, sqlite.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "RTI request not found")
	}
	if err != nil {
		logger.Error("RTI request lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to load RTI request")
	}
	return ok(c, requestView(request))
}
