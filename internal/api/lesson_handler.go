package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/linguahub/lingua-api/internal/api/shared"
	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/service/enrollment"
	"github.com/linguahub/lingua-api/internal/store"
)

// LessonHandler handles lesson content and completion API requests.
type LessonHandler struct {
	courseStore       store.CourseStore
	lessonStore       store.LessonStore
	enrollmentService enrollment.EnrollmentService
	validator         *validator.Validate
}

// NewLessonHandler creates a new LessonHandler with the given dependencies.
func NewLessonHandler(
	courseStore store.CourseStore,
	lessonStore store.LessonStore,
	enrollmentService enrollment.EnrollmentService,
) *LessonHandler {
	return &LessonHandler{
		courseStore:       courseStore,
		lessonStore:       lessonStore,
		enrollmentService: enrollmentService,
		validator:         validator.New(),
	}
}

// ListByCourse handles GET /api/courses/{id}/lessons.
func (h *LessonHandler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// Surface a 404 for unknown courses instead of an empty list.
	if _, err := h.courseStore.GetByID(r.Context(), courseID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	lessons, err := h.lessonStore.ListByCourse(r.Context(), courseID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list lessons")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lessons)
}

// GetLesson handles GET /api/lessons/{id}.
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	lesson, err := h.lessonStore.GetByID(r.Context(), lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// CreateLesson handles POST /api/courses/{id}/lessons. Only the owning
// teacher or an admin may add lessons to a course.
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	actor, courseID, ok := requireActorAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req LessonRequest
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

	if !domain.CanMutateLesson(actor, course) {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	lesson, err := domain.NewLesson(
		courseID,
		req.Title,
		req.Content,
		req.Position,
		req.DurationMinutes,
		req.VideoURL,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson data: "+err.Error())
		return
	}

	if err := h.lessonStore.Create(r.Context(), lesson); err != nil {
		HandleAPIError(w, r, err, "Failed to create lesson")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, lesson)
}

// UpdateLesson handles PUT /api/lessons/{id}. Ownership follows the lesson's
// parent course.
func (h *LessonHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	actor, lessonID, ok := requireActorAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req LessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	lesson, err := h.lessonStore.GetByID(r.Context(), lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	course, err := h.courseStore.GetByID(r.Context(), lesson.CourseID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if !domain.CanMutateLesson(actor, course) {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	lesson.Title = req.Title
	lesson.Content = req.Content
	lesson.Position = req.Position
	lesson.DurationMinutes = req.DurationMinutes
	lesson.VideoURL = req.VideoURL

	if err := lesson.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson data: "+err.Error())
		return
	}

	if err := h.lessonStore.Update(r.Context(), lesson); err != nil {
		HandleAPIError(w, r, err, "Failed to update lesson")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// DeleteLesson handles DELETE /api/lessons/{id}. Ownership follows the
// lesson's parent course.
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	actor, lessonID, ok := requireActorAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	lesson, err := h.lessonStore.GetByID(r.Context(), lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	course, err := h.courseStore.GetByID(r.Context(), lesson.CourseID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if !domain.CanMutateLesson(actor, course) {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	if err := h.lessonStore.Delete(r.Context(), lessonID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete lesson")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CompleteLesson handles POST /api/lessons/{id}/complete. Repeating the call
// refreshes the stored completion; it never duplicates it or moves progress.
func (h *LessonHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	actor, lessonID, ok := requireActorAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	completion, progress, err := h.enrollmentService.CompleteLesson(r.Context(), actor.ID, lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CompleteLessonResponse{
		Completion: completion,
		Progress:   progress,
	})
}
