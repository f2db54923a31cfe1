package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/linguahub/lingua-api/internal/api/shared"
	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/service/enrollment"
	"github.com/linguahub/lingua-api/internal/store"
)

// CourseHandler handles course catalog and enrollment API requests.
type CourseHandler struct {
	courseStore       store.CourseStore
	lessonStore       store.LessonStore
	enrollmentService enrollment.EnrollmentService
	validator         *validator.Validate
}

// NewCourseHandler creates a new CourseHandler with the given dependencies.
func NewCourseHandler(
	courseStore store.CourseStore,
	lessonStore store.LessonStore,
	enrollmentService enrollment.EnrollmentService,
) *CourseHandler {
	return &CourseHandler{
		courseStore:       courseStore,
		lessonStore:       lessonStore,
		enrollmentService: enrollmentService,
		validator:         validator.New(),
	}
}

// ListCourses handles GET /api/courses. The language, level, and popular
// query parameters are optional filters; invalid filter values simply match
// nothing rather than erroring.
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	filter := store.CourseFilter{
		Language: domain.Language(r.URL.Query().Get("language")),
		Level:    domain.Level(r.URL.Query().Get("level")),
	}
	if popular := r.URL.Query().Get("popular"); popular != "" {
		isPopular := popular == "true"
		filter.Popular = &isPopular
	}

	courses, err := h.courseStore.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list courses")
		return
	}

	response := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		response = append(response, CourseResponse{Course: c.Course, TeacherName: c.TeacherName})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetCourse handles GET /api/courses/{id}, returning the course with its
// lessons ordered by position.
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	course, err := h.courseStore.GetByID(r.Context(), courseID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	lessons, err := h.lessonStore.ListByCourse(r.Context(), courseID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load course lessons")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CourseDetailResponse{
		Course:  *course,
		Lessons: lessons,
	})
}

// CreateCourse handles POST /api/courses. The route is restricted to
// teachers and admins; the new course is owned by the acting user.
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	course, err := domain.NewCourse(
		actor.ID,
		req.Title,
		req.Description,
		domain.Language(req.Language),
		domain.Level(req.Level),
		req.PriceCents,
		req.DurationWeeks,
		req.LessonsCount,
		req.ImageURL,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid course data: "+err.Error())
		return
	}
	course.IsPopular = req.IsPopular

	if err := h.courseStore.Create(r.Context(), course); err != nil {
		HandleAPIError(w, r, err, "Failed to create course")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, course)
}

// UpdateCourse handles PUT /api/courses/{id}. Only the owning teacher or an
// admin may update a course.
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	actor, courseID, ok := requireActorAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req CourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	course, err := h.courseStore.GetByID(r.Context(), courseID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if !domain.CanMutateCourse(actor, course) {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Language = domain.Language(req.Language)
	course.Level = domain.Level(req.Level)
	course.PriceCents = req.PriceCents
	course.DurationWeeks = req.DurationWeeks
	course.LessonsCount = req.LessonsCount
	course.ImageURL = req.ImageURL
	course.IsPopular = req.IsPopular

	if err := course.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid course data: "+err.Error())
		return
	}

	if err := h.courseStore.Update(r.Context(), course); err != nil {
		HandleAPIError(w, r, err, "Failed to update course")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// DeleteCourse handles DELETE /api/courses/{id}. Only the owning teacher or
// an admin may delete a course; its lessons cascade.
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	actor, courseID, ok := requireActorAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	course, err := h.courseStore.GetByID(r.Context(), courseID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if !domain.CanMutateCourse(actor, course) {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	if err := h.courseStore.Delete(r.Context(), courseID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Enroll handles POST /api/courses/{id}/enroll.
func (h *CourseHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	actor, courseID, ok := requireActorAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	created, err := h.enrollmentService.Enroll(r.Context(), actor.ID, courseID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}

// MyEnrollments handles GET /api/courses/my-enrollments.
func (h *CourseHandler) MyEnrollments(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	enrolled, err := h.enrollmentService.ListEnrollments(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list enrollments")
		return
	}

	response := make([]EnrolledCourseResponse, 0, len(enrolled))
	for _, e := range enrolled {
		response = append(response, EnrolledCourseResponse{
			Enrollment: e.Enrollment,
			Course:     e.Course,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
