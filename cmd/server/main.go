// Package main initializes and starts the task-tracking HTTP server,
// setting up configuration, logging, storage, services, and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/akoreshkov/taskkeeper/internal/config"
	"github.com/akoreshkov/taskkeeper/internal/db"
	"github.com/akoreshkov/taskkeeper/internal/logger"
	"github.com/akoreshkov/taskkeeper/internal/password"
	"github.com/akoreshkov/taskkeeper/internal/repository"
	"github.com/akoreshkov/taskkeeper/internal/server/handler/http"
	"github.com/akoreshkov/taskkeeper/internal/service"
	"github.com/akoreshkov/taskkeeper/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == config.DefaultJWTSecret {
		zapLogger.Warn("JWT secret is the development placeholder; set JWT_SECRET before deploying")
	}

	tokens := token.NewManager([]byte(options.JWTSecret), token.DefaultTTL)
	hasher := password.NewHasher()

	// Pick the storage backend: PostgreSQL when a DSN is configured,
	// otherwise the ephemeral in-memory stores.
	var (
		userRepo service.UserRepository
		todoRepo service.TodoRepository
	)
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		userRepo = repository.NewPostgresUserRepository(postgresDB)
		todoRepo = repository.NewPostgresTodoRepository(postgresDB)
		zapLogger.Info("using postgres storage")
	} else {
		userRepo = repository.NewMemoryUserRepository()
		todoRepo = repository.NewMemoryTodoRepository()
		zapLogger.Info("using in-memory storage; data is lost on restart")
	}

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, hasher, tokens)
	todoService := service.NewTodoService(todoRepo)

	// Create HTTP handlers for auth and todo endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	todoHandler := &http.TodoHandler{TodoService: todoService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, todoHandler, tokens, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
