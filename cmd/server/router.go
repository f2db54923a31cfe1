package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/linguahub/lingua-api/internal/api"
	apiMiddleware "github.com/linguahub/lingua-api/internal/api/middleware"
	"github.com/linguahub/lingua-api/internal/domain"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Catalog reads are public; everything that acts on behalf of
// a user requires a valid token.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
	)
	courseHandler := api.NewCourseHandler(app.courseStore, app.lessonStore, app.enrollmentService)
	lessonHandler := api.NewLessonHandler(app.courseStore, app.lessonStore, app.enrollmentService)
	dictionaryHandler := api.NewDictionaryHandler(app.dictionaryStore)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Catalog endpoints (public)
		r.Get("/courses", courseHandler.ListCourses)
		r.Get("/courses/{id}", courseHandler.GetCourse)
		r.Get("/courses/{id}/lessons", lessonHandler.ListByCourse)
		r.Get("/lessons/{id}", lessonHandler.GetLesson)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Profile endpoints
			r.Get("/auth/profile", authHandler.GetProfile)
			r.Put("/auth/profile", authHandler.UpdateProfile)

			// Course management (creation limited to teachers and admins;
			// updates and deletes are ownership-checked in the handler)
			r.With(authMiddleware.RequireRole(domain.RoleTeacher, domain.RoleAdmin)).
				Post("/courses", courseHandler.CreateCourse)
			r.Put("/courses/{id}", courseHandler.UpdateCourse)
			r.Delete("/courses/{id}", courseHandler.DeleteCourse)

			// Lesson management
			r.Post("/courses/{id}/lessons", lessonHandler.CreateLesson)
			r.Put("/lessons/{id}", lessonHandler.UpdateLesson)
			r.Delete("/lessons/{id}", lessonHandler.DeleteLesson)

			// Enrollment and progress endpoints
			r.Get("/courses/my-enrollments", courseHandler.MyEnrollments)
			r.Post("/courses/{id}/enroll", courseHandler.Enroll)
			r.Post("/lessons/{id}/complete", lessonHandler.CompleteLesson)

			// Personal dictionary endpoints
			r.Get("/dictionary", dictionaryHandler.ListEntries)
			r.Post("/dictionary", dictionaryHandler.CreateEntry)
			r.Put("/dictionary/{id}", dictionaryHandler.UpdateEntry)
			r.Delete("/dictionary/{id}", dictionaryHandler.DeleteEntry)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
