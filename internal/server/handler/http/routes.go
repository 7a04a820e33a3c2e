package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/akoreshkov/taskkeeper/internal/middleware"
)

// NewRouter constructs and returns the HTTP handler that serves the
// task-tracking API.
//
// Routes:
//
//	GET    /health         → Health (public)
//	POST   /auth/register  → authHandler.Register (public)
//	POST   /auth/login     → authHandler.Login (public)
//	GET    /todos          → todoHandler.List
//	POST   /todos          → todoHandler.Create
//	PATCH  /todos/{id}     → todoHandler.Update
//	DELETE /todos/{id}     → todoHandler.Delete
//
// The /todos group is protected by middleware.BearerAuth, so the todo
// handlers always run with a verified identity in the request context.
// Every request passes through middleware.WithRequestLogging.
func NewRouter(
	authHandler *AuthHandler,
	todoHandler *TodoHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/health", Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Protected group: requires a valid bearer token
	r.Route("/todos", func(r chi.Router) {
		r.Use(middleware.BearerAuth(verifier, logger))

		r.Get("/", todoHandler.List)
		r.Post("/", todoHandler.Create)
		r.Patch("/{id}", todoHandler.Update)
		r.Delete("/{id}", todoHandler.Delete)
	})

	return r
}
