package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/linguahub/lingua-api/internal/config"
	"github.com/linguahub/lingua-api/internal/platform/postgres"
	"github.com/linguahub/lingua-api/internal/service/auth"
	"github.com/linguahub/lingua-api/internal/service/enrollment"
	"github.com/linguahub/lingua-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	courseStore     store.CourseStore
	lessonStore     store.LessonStore
	enrollmentStore store.EnrollmentStore
	completionStore store.CompletionStore
	dictionaryStore store.DictionaryStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordHasher    auth.PasswordHasher
	passwordVerifier  auth.PasswordVerifier
	enrollmentService enrollment.EnrollmentService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hashing; the hasher doubles as the verifier.
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	app.passwordHasher = hasher
	app.passwordVerifier = hasher

	// Initialize stores
	app.userStore = postgres.NewUserStore(db, logger)
	app.courseStore = postgres.NewCourseStore(db, logger)
	app.lessonStore = postgres.NewLessonStore(db, logger)
	app.enrollmentStore = postgres.NewEnrollmentStore(db, logger)
	app.completionStore = postgres.NewCompletionStore(db, logger)
	app.dictionaryStore = postgres.NewDictionaryStore(db, logger)

	// Initialize enrollment service
	app.enrollmentService = enrollment.NewEnrollmentService(
		db,
		app.courseStore,
		app.lessonStore,
		app.enrollmentStore,
		app.completionStore,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
