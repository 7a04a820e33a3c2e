package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akoreshkov/taskkeeper/internal/models"
	"github.com/akoreshkov/taskkeeper/internal/service"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	user  *models.PublicUser
	token string
	err   error
}

func (f *fakeAuthService) Register(ctx context.Context, email, password string) (*models.PublicUser, string, error) {
	return f.user, f.token, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*models.PublicUser, string, error) {
	return f.user, f.token, f.err
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "validation failed",
		},
		{
			name:           "malformed email",
			body:           `{"email":"not-an-email","password":"secret1"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "email must be a valid email address",
		},
		{
			name:           "short password",
			body:           `{"email":"a@x.com","password":"abc"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "password must be at least 6 characters",
		},
		{
			name:           "email already registered",
			body:           `{"email":"a@x.com","password":"secret1"}`,
			service:        &fakeAuthService{err: service.ErrEmailExists},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "email already registered",
		},
		{
			name:           "service failure",
			body:           `{"email":"a@x.com","password":"secret1"}`,
			service:        &fakeAuthService{err: errors.New("store down")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "internal error",
		},
		{
			name:           "success",
			body:           `{"email":"a@x.com","password":"secret1"}`,
			service:        &fakeAuthService{user: &models.PublicUser{ID: "u1", Email: "a@x.com"}, token: "tok"},
			expectedCode:   http.StatusCreated,
			expectedSubstr: `"token":"tok"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/auth/register", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service}
			h.Register(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			buf := new(bytes.Buffer)
			if _, err := buf.ReadFrom(res.Body); err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !bytes.Contains(buf.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, buf.String())
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid shape",
			body:           `{"email":"","password":""}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "validation failed",
		},
		{
			name:           "invalid credentials",
			body:           `{"email":"a@x.com","password":"wrong-1"}`,
			service:        &fakeAuthService{err: service.ErrInvalidCredentials},
			expectedCode:   http.StatusUnauthorized,
			expectedSubstr: "invalid email or password",
		},
		{
			name:           "success",
			body:           `{"email":"a@x.com","password":"secret1"}`,
			service:        &fakeAuthService{user: &models.PublicUser{ID: "u1", Email: "a@x.com"}, token: "tok"},
			expectedCode:   http.StatusOK,
			expectedSubstr: `"success":true`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service}
			h.Login(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			buf := new(bytes.Buffer)
			if _, err := buf.ReadFrom(res.Body); err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !bytes.Contains(buf.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, buf.String())
			}
		})
	}
}

func TestAuthHandler_SuccessPayloadShape(t *testing.T) {
	svc := &fakeAuthService{user: &models.PublicUser{ID: "u1", Email: "a@x.com"}, token: "tok"}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", bytes.NewBufferString(`{"email":"a@x.com","password":"secret1"}`))

	h := &AuthHandler{AuthService: svc}
	h.Register(rec, req)

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			User  map[string]any `json:"user"`
			Token string         `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if !payload.Success || payload.Data.Token != "tok" {
		t.Errorf("unexpected payload: %+v", payload)
	}
	if payload.Data.User["email"] != "a@x.com" {
		t.Errorf("unexpected user view: %+v", payload.Data.User)
	}
	if _, leaked := payload.Data.User["passwordHash"]; leaked {
		t.Error("password hash must never be serialized")
	}
}
