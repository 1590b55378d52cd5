package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/auth"
	"github.com/civiclens/backend/internal/storage/models"
	"github.com/civiclens/backend/pkg/logger"
)

type AuthHandler struct {
	service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func userView(u *models.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, token, err := h.service.Register(req.Name, req.Email, req.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		return fail(c, fiber.StatusConflict, "Email already registered")
	}
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	return respond(c, fiber.StatusCreated, fiber.Map{
		"user":  userView(user),
		"token": token,
	}, nil)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, token, err := h.service.Login(req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		logger.Error("Login failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Login failed")
	}

	return ok(c, fiber.Map{
		"user":  userView(user),
		"token": token,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	user, err := h.service.GetUser(userID)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unknown user")
	}
	return ok(c, userView(user))
}

// RequireAuth verifies the bearer token and stores the user id in locals
// for downstream handlers.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return fail(c, fiber.StatusUnauthorized, "Authorization bearer token required")
	}

	userID, err := h.service.VerifyToken(token)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	c.Locals("user_id", userID)
	return c.Next()
}
