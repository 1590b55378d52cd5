package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/storage/models"
	"github.com/civiclens/backend/internal/storage/sqlite"
	"github.com/civiclens/backend/pkg/logger"
)

const (
	maxIdeaLength    = 2000
	maxCommentLength = 1000
	topIdeasLimit    = 10
)

type ForumHandler struct {
	store *sqlite.Client
}

func NewForumHandler(store *sqlite.Client) *ForumHandler {
	return &ForumHandler{store: store}
}

func ideaView(i *models.Idea) fiber.Map {
	return fiber.Map{
		"id":             i.ID,
		"content":        i.Content,
		"author_name":    i.AuthorName,
		"score":          i.Score,
		"comments_count": i.CommentsCount,
		"created_at":     i.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func commentView(cm *models.Comment) fiber.Map {
	return fiber.Map{
		"id":          cm.ID,
		"idea_id":     cm.IdeaID,
		"content":     cm.Content,
		"author_name": cm.AuthorName,
		"created_at":  cm.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ideaViews(ideas []*models.Idea) []fiber.Map {
	out := make([]fiber.Map, 0, len(ideas))
	for _, i := range ideas {
		out = append(out, ideaView(i))
	}
	return out
}

func (h *ForumHandler) ListIdeas(c *fiber.Ctx) error {
	ideas, err := h.store.ListIdeas(0)
	if err != nil {
		logger.Error("Idea listing failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to list ideas")
	}
	return okWithMeta(c, ideaViews(ideas), fiber.Map{"count": len(ideas)})
}

func (h *ForumHandler) TopIdeas(c *fiber.Ctx) error {
	ideas, err := h.store.ListIdeas(topIdeasLimit)
	if err != nil {
		logger.Error("Top ideas listing failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to list ideas")
	}
	return ok(c, ideaViews(ideas))
}

func (h *ForumHandler) CreateIdea(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return fail(c, fiber.StatusBadRequest, "content is required")
	}
	if len(content) > maxIdeaLength {
		return fail(c, fiber.StatusBadRequest, "content is too long")
	}

	idea := &models.Idea{
		ID:        uuid.NewString(),
		UserID:    c.Locals("user_id").(string),
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := h.store.InsertIdea(idea); err != nil {
		logger.Error("Idea creation failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to create idea")
	}

	stored, err := h.store.GetIdea(idea.ID)
	if err != nil {
		return created(c, ideaView(idea))
	}
	return created(c, ideaView(stored))
}

// Vote records an up or down vote. A repeat vote by the same user replaces
// the previous one.
func (h *ForumHandler) Vote(c *fiber.Ctx) error {
	var req struct {
		Value int `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Value != 1 && req.Value != -1 {
		return fail(c, fiber.StatusBadRequest, "value must be 1 or -1")
	}

	ideaID := c.Params("id")
	if _, err := h.store.GetIdea(ideaID); errors.Is(err, sqlite.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "Idea not found")
	} else if err != nil {
		logger.Error("Idea lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to record vote")
	}

	vote := &models.Vote{
		UserID:    c.Locals("user_id").(string),
		IdeaID:    ideaID,
		Value:     req.Value,
		CreatedAt: time.Now(),
	}
	if err := h.store.UpsertVote(vote); err != nil {
		logger.Error("Vote failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to record vote")
	}

	score, err := h.store.IdeaScore(ideaID)
	if err != nil {
		logger.Error("Score lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to record vote")
	}

	return ok(c, fiber.Map{"idea_id": ideaID, "score": score})
}

func (h *ForumHandler) ListComments(c *fiber.Ctx) error {
	ideaID := c.Params("id")
	if _, err := h.store.GetIdea(ideaID); errors.Is(err, sqlite.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "Idea not found")
	} else if err != nil {
		logger.Error("Idea lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to list comments")
	}

	comments, err := h.store.ListComments(ideaID)
	if err != nil {
		logger.Error("Comment listing failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to list comments")
	}

	out := make([]fiber.Map, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentView(cm))
	}
	return okWithMeta(c, out, fiber.Map{"count": len(out)})
}

func (h *ForumHandler) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return fail(c, fiber.StatusBadRequest, "content is required")
	}
	if len(content) > maxCommentLength {
		return fail(c, fiber.StatusBadRequest, "content is too long")
	}

	ideaID := c.Params("id")
	if _, err := h.store.GetIdea(ideaID); errors.Is(err, sqlite.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "Idea not found")
	} else if err != nil {
		logger.Error("Idea lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to create comment")
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		IdeaID:    ideaID,
		UserID:    c.Locals("user_id").(string),
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := h.store.InsertComment(comment); err != nil {
		logger.Error("Comment creation failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to create comment")
	}

	return created(c, commentView(comment))
}
