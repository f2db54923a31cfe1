package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/service/enrollment"
	"github.com/linguahub/lingua-api/internal/store"
)

func testCourse(teacherID uuid.UUID) *domain.Course {
	return &domain.Course{
		ID:        uuid.New(),
		TeacherID: teacherID,
		Title:     "German for Beginners",
		Language:  domain.LanguageGerman,
		Level:     domain.LevelA1,
	}
}

func TestListCourses(t *testing.T) {
	t.Parallel()

	t.Run("passes filters through to the store", func(t *testing.T) {
		t.Parallel()

		var gotFilter store.CourseFilter
		courseStore := &mockCourseStore{
			listFn: func(_ context.Context, filter store.CourseFilter) ([]store.CourseWithTeacher, error) {
				gotFilter = filter
				return []store.CourseWithTeacher{
					{Course: *testCourse(uuid.New()), TeacherName: "Maria Lopez"},
				}, nil
			},
		}
		handler := NewCourseHandler(courseStore, &mockLessonStore{}, &mockEnrollmentService{})

		r := httptest.NewRequest(http.MethodGet, "/api/courses?language=german&level=A1&popular=true", nil)
		rr := executeRequest(handler.ListCourses, r)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.LanguageGerman, gotFilter.Language)
		assert.Equal(t, domain.LevelA1, gotFilter.Level)
		require.NotNil(t, gotFilter.Popular)
		assert.True(t, *gotFilter.Popular)

		var resp []CourseResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Maria Lopez", resp[0].TeacherName)
	})

	t.Run("no filters means zero-valued filter", func(t *testing.T) {
		t.Parallel()

		courseStore := &mockCourseStore{
			listFn: func(_ context.Context, filter store.CourseFilter) ([]store.CourseWithTeacher, error) {
				assert.Empty(t, filter.Language)
				assert.Empty(t, filter.Level)
				assert.Nil(t, filter.Popular)
				return nil, nil
			},
		}
		handler := NewCourseHandler(courseStore, &mockLessonStore{}, &mockEnrollmentService{})

		rr := executeRequest(handler.ListCourses, httptest.NewRequest(http.MethodGet, "/api/courses", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}

func TestGetCourse(t *testing.T) {
	t.Parallel()

	course := testCourse(uuid.New())
	lesson := &domain.Lesson{ID: uuid.New(), CourseID: course.ID, Title: "Greetings", Position: 1}

	t.Run("returns course with lessons", func(t *testing.T) {
		t.Parallel()

		courseStore := &mockCourseStore{
			getByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Course, error) {
				require.Equal(t, course.ID, id)
				return course, nil
			},
		}
		lessonStore := &mockLessonStore{
			listByCourseFn: func(_ context.Context, _ uuid.UUID) ([]*domain.Lesson, error) {
				return []*domain.Lesson{lesson}, nil
			},
		}
		handler := NewCourseHandler(courseStore, lessonStore, &mockEnrollmentService{})

		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/courses/x", nil), "id", course.ID.String())
		rr := executeRequest(handler.GetCourse, r)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp CourseDetailResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, course.ID, resp.ID)
		require.Len(t, resp.Lessons, 1)
		assert.Equal(t, "Greetings", resp.Lessons[0].Title)
	})

	t.Run("unknown course returns 404", func(t *testing.T) {
		t.Parallel()

		courseStore := &mockCourseStore{
			getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.Course, error) {
				return nil, store.ErrCourseNotFound
			},
		}
		handler := NewCourseHandler(courseStore, &mockLessonStore{}, &mockEnrollmentService{})

		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/courses/x", nil), "id", uuid.NewString())
		rr := executeRequest(handler.GetCourse, r)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		t.Parallel()

		handler := NewCourseHandler(&mockCourseStore{}, &mockLessonStore{}, &mockEnrollmentService{})

		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/courses/x", nil), "id", "not-a-uuid")
		rr := executeRequest(handler.GetCourse, r)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateCourseOwnership(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	course := testCourse(ownerID)

	courseStore := &mockCourseStore{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.Course, error) {
			c := *course
			return &c, nil
		},
		updateFn: func(_ context.Context, _ *domain.Course) error { return nil },
	}

	body := CourseRequest{
		Title:    "German for Beginners, 2nd edition",
		Language: "german",
		Level:    "A1",
	}

	tests := []struct {
		name           string
		actorID        uuid.UUID
		actorRole      domain.Role
		expectedStatus int
	}{
		{"owning teacher may update", ownerID, domain.RoleTeacher, http.StatusOK},
		{"admin may update any course", uuid.New(), domain.RoleAdmin, http.StatusOK},
		{"other teacher is forbidden", uuid.New(), domain.RoleTeacher, http.StatusForbidden},
		{"student is forbidden", uuid.New(), domain.RoleStudent, http.StatusForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewCourseHandler(courseStore, &mockLessonStore{}, &mockEnrollmentService{})

			r := postJSON(t, "/api/courses/x", body)
			r = withAuthContext(r, tt.actorID, tt.actorRole)
			r = withURLParam(r, "id", course.ID.String())

			rr := executeRequest(handler.UpdateCourse, r)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestEnroll(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	courseID := uuid.New()

	t.Run("successful enrollment", func(t *testing.T) {
		t.Parallel()

		enrolled, err := domain.NewEnrollment(userID, courseID)
		require.NoError(t, err)

		svc := &mockEnrollmentService{
			enrollFn: func(_ context.Context, uid, cid uuid.UUID) (*domain.Enrollment, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, courseID, cid)
				return enrolled, nil
			},
		}
		handler := NewCourseHandler(&mockCourseStore{}, &mockLessonStore{}, svc)

		r := httptest.NewRequest(http.MethodPost, "/api/courses/x/enroll", nil)
		r = withAuthContext(r, userID, domain.RoleStudent)
		r = withURLParam(r, "id", courseID.String())

		rr := executeRequest(handler.Enroll, r)

		require.Equal(t, http.StatusCreated, rr.Code)

		var resp domain.Enrollment
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, enrolled.ID, resp.ID)
		assert.Equal(t, 0, resp.Progress)
	})

	t.Run("duplicate enrollment returns conflict", func(t *testing.T) {
		t.Parallel()

		svc := &mockEnrollmentService{
			enrollFn: func(_ context.Context, _, _ uuid.UUID) (*domain.Enrollment, error) {
				return nil, enrollment.ErrAlreadyEnrolled
			},
		}
		handler := NewCourseHandler(&mockCourseStore{}, &mockLessonStore{}, svc)

		r := httptest.NewRequest(http.MethodPost, "/api/courses/x/enroll", nil)
		r = withAuthContext(r, userID, domain.RoleStudent)
		r = withURLParam(r, "id", courseID.String())

		rr := executeRequest(handler.Enroll, r)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "already enrolled")
	})

	t.Run("unknown course returns 404", func(t *testing.T) {
		t.Parallel()

		svc := &mockEnrollmentService{
			enrollFn: func(_ context.Context, _, _ uuid.UUID) (*domain.Enrollment, error) {
				return nil, enrollment.ErrCourseNotFound
			},
		}
		handler := NewCourseHandler(&mockCourseStore{}, &mockLessonStore{}, svc)

		r := httptest.NewRequest(http.MethodPost, "/api/courses/x/enroll", nil)
		r = withAuthContext(r, userID, domain.RoleStudent)
		r = withURLParam(r, "id", courseID.String())

		rr := executeRequest(handler.Enroll, r)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestMyEnrollments(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	course := testCourse(uuid.New())

	svc := &mockEnrollmentService{
		listEnrollmentsFn: func(_ context.Context, uid uuid.UUID) ([]store.EnrolledCourse, error) {
			require.Equal(t, userID, uid)
			return []store.EnrolledCourse{
				{
					Enrollment: domain.Enrollment{ID: uuid.New(), UserID: userID, CourseID: course.ID, Progress: 33},
					Course:     *course,
				},
			}, nil
		},
	}
	handler := NewCourseHandler(&mockCourseStore{}, &mockLessonStore{}, svc)

	r := httptest.NewRequest(http.MethodGet, "/api/courses/my-enrollments", nil)
	r = withAuthContext(r, userID, domain.RoleStudent)

	rr := executeRequest(handler.MyEnrollments, r)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp []EnrolledCourseResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, 33, resp[0].Enrollment.Progress)
	assert.Equal(t, course.ID, resp[0].Course.ID)
}
