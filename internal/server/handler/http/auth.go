package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/akoreshkov/taskkeeper/internal/models"
	"github.com/akoreshkov/taskkeeper/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new identity and returns its public view and a token.
	Register(ctx context.Context, email, password string) (*models.PublicUser, string, error)
	// Login verifies credentials and returns the public view and a fresh token.
	Login(ctx context.Context, email, password string) (*models.PublicUser, string, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// credentialsRequest represents the JSON payload for register and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authPayload is the data object returned by register and login.
type authPayload struct {
	User  *models.PublicUser `json:"user"`
	Token string             `json:"token"`
}

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateCredentials checks the request shape shared by register and login.
func validateCredentials(req credentialsRequest) []string {
	var details []string
	if !emailPattern.MatchString(req.Email) {
		details = append(details, "email must be a valid email address")
	}
	if len(req.Password) < minPasswordLength {
		details = append(details, "password must be at least 6 characters")
	}
	return details
}

// Register handles POST /auth/register.
// It validates the credential shape, creates the identity, and responds 201
// with the public user view and a bearer token. A malformed body is treated
// as empty input and fails validation; a taken email responds 400.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if details := validateCredentials(req); len(details) > 0 {
		writeError(w, http.StatusBadRequest, "validation failed", details...)
		return
	}

	user, tok, err := h.AuthService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusCreated, authPayload{User: user, Token: tok})
}

// Login handles POST /auth/login.
// Unknown email and wrong password produce the same 401 response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if details := validateCredentials(req); len(details) > 0 {
		writeError(w, http.StatusBadRequest, "validation failed", details...)
		return
	}

	user, tok, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, authPayload{User: user, Token: tok})
}
