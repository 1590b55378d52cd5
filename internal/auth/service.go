package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/civiclens/backend/internal/storage/models"
	"github.com/civiclens/backend/internal/storage/sqlite"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const minPasswordLength = 8

// Service issues and verifies forum credentials. Tokens are HMAC-signed
// opaque strings: base64url(userID:expiryUnix) "." base64url(signature).
type Service struct {
	store    *sqlite.Client
	secret   []byte
	tokenTTL time.Duration
}

func NewService(store *sqlite.Client, secret string, tokenTTLDays int) *Service {
	if tokenTTLDays <= 0 {
		tokenTTLDays = 30
	}
	return &Service{
		store:    store,
		secret:   []byte(secret),
		tokenTTL: time.Duration(tokenTTLDays) * 24 * time.Hour,
	}
}

// Register creates a user and returns it with a fresh token.
func (s *Service) Register(name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, "", errors.New("name is required")
	}
	if !strings.Contains(email, "@") || strings.ContainsAny(email, " \t") {
		return nil, "", errors.New("a valid email address is required")
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	existing, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	return user, s.IssueToken(user.ID), nil
}

// Login verifies credentials and returns the user with a fresh token. The
// same error covers unknown email and wrong password.
func (s *Service) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	return user, s.IssueToken(user.ID), nil
}

func (s *Service) GetUser(id string) (*models.User, error) {
	return s.store.GetUser(id)
}

// IssueToken signs a token expiring after the configured TTL.
func (s *Service) IssueToken(userID string) string {
	expiry := time.Now().Add(s.tokenTTL).Unix()
	payload := userID + ":" + strconv.FormatInt(expiry, 10)
	return base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + s.sign(payload)
}

// VerifyToken returns the user id a valid token was issued for.
func (s *Service) VerifyToken(token string) (string, error) {
	encoded, sig, found := strings.Cut(token, ".")
	if !found {
		return "", ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidToken
	}
	payload := string(raw)

	if !hmac.Equal([]byte(sig), []byte(s.sign(payload))) {
		return "", ErrInvalidToken
	}

	userID, expiryText, found := strings.Cut(payload, ":")
	if !found || userID == "" {
		return "", ErrInvalidToken
	}
	expiry, err := strconv.ParseInt(expiryText, 10, 64)
	if err != nil || time.Now().Unix() >= expiry {
		return "", ErrInvalidToken
	}

	return userID, nil
}

func (s *Service) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
