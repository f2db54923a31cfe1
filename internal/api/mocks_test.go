package api

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/linguahub/lingua-api/internal/api/shared"
	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/service/auth"
	"github.com/linguahub/lingua-api/internal/store"
)

// Function-field fakes for handler tests. Unset fields panic, which makes a
// test exercising an unexpected code path fail loudly.

type mockUserStore struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn     func(ctx context.Context, user *domain.User) error
}

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	return m.updateFn(ctx, user)
}

type mockCourseStore struct {
	createFn  func(ctx context.Context, course *domain.Course) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	listFn    func(ctx context.Context, filter store.CourseFilter) ([]store.CourseWithTeacher, error)
	updateFn  func(ctx context.Context, course *domain.Course) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

var _ store.CourseStore = (*mockCourseStore)(nil)

func (m *mockCourseStore) Create(ctx context.Context, course *domain.Course) error {
	return m.createFn(ctx, course)
}

func (m *mockCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockCourseStore) List(
	ctx context.Context,
	filter store.CourseFilter,
) ([]store.CourseWithTeacher, error) {
	return m.listFn(ctx, filter)
}

func (m *mockCourseStore) Update(ctx context.Context, course *domain.Course) error {
	return m.updateFn(ctx, course)
}

func (m *mockCourseStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockLessonStore struct {
	createFn        func(ctx context.Context, lesson *domain.Lesson) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	listByCourseFn  func(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error)
	countByCourseFn func(ctx context.Context, courseID uuid.UUID) (int, error)
	updateFn        func(ctx context.Context, lesson *domain.Lesson) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

var _ store.LessonStore = (*mockLessonStore)(nil)

func (m *mockLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	return m.createFn(ctx, lesson)
}

func (m *mockLessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockLessonStore) ListByCourse(
	ctx context.Context,
	courseID uuid.UUID,
) ([]*domain.Lesson, error) {
	return m.listByCourseFn(ctx, courseID)
}

func (m *mockLessonStore) CountByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	return m.countByCourseFn(ctx, courseID)
}

func (m *mockLessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	return m.updateFn(ctx, lesson)
}

func (m *mockLessonStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockLessonStore) WithTx(tx *sql.Tx) store.LessonStore { return m }

type mockDictionaryStore struct {
	createFn     func(ctx context.Context, entry *domain.DictionaryEntry) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.DictionaryEntry, error)
	listByUserFn func(ctx context.Context, userID uuid.UUID, filter store.EntryFilter) ([]*domain.DictionaryEntry, error)
	updateFn     func(ctx context.Context, entry *domain.DictionaryEntry) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

var _ store.DictionaryStore = (*mockDictionaryStore)(nil)

func (m *mockDictionaryStore) Create(ctx context.Context, entry *domain.DictionaryEntry) error {
	return m.createFn(ctx, entry)
}

func (m *mockDictionaryStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.DictionaryEntry, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockDictionaryStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.EntryFilter,
) ([]*domain.DictionaryEntry, error) {
	return m.listByUserFn(ctx, userID, filter)
}

func (m *mockDictionaryStore) Update(ctx context.Context, entry *domain.DictionaryEntry) error {
	return m.updateFn(ctx, entry)
}

func (m *mockDictionaryStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockEnrollmentService struct {
	enrollFn          func(ctx context.Context, userID, courseID uuid.UUID) (*domain.Enrollment, error)
	listEnrollmentsFn func(ctx context.Context, userID uuid.UUID) ([]store.EnrolledCourse, error)
	completeLessonFn  func(ctx context.Context, userID, lessonID uuid.UUID) (*domain.LessonCompletion, int, error)
}

func (m *mockEnrollmentService) Enroll(
	ctx context.Context,
	userID, courseID uuid.UUID,
) (*domain.Enrollment, error) {
	return m.enrollFn(ctx, userID, courseID)
}

func (m *mockEnrollmentService) ListEnrollments(
	ctx context.Context,
	userID uuid.UUID,
) ([]store.EnrolledCourse, error) {
	return m.listEnrollmentsFn(ctx, userID)
}

func (m *mockEnrollmentService) CompleteLesson(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) (*domain.LessonCompletion, int, error) {
	return m.completeLessonFn(ctx, userID, lessonID)
}

type mockJWTService struct {
	generateTokenFn func(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)
	validateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

var _ auth.JWTService = (*mockJWTService)(nil)

func (m *mockJWTService) GenerateToken(
	ctx context.Context,
	userID uuid.UUID,
	role domain.Role,
) (string, error) {
	return m.generateTokenFn(ctx, userID, role)
}

func (m *mockJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	return m.validateTokenFn(ctx, tokenString)
}

type mockPasswordHasher struct {
	hashFn    func(password string) (string, error)
	compareFn func(hashedPassword, password string) error
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	return m.hashFn(password)
}

func (m *mockPasswordHasher) Compare(hashedPassword, password string) error {
	return m.compareFn(hashedPassword, password)
}

// withAuthContext attaches an authenticated user's ID and role to the
// request, the way the auth middleware would after validating a token.
func withAuthContext(r *http.Request, userID uuid.UUID, role domain.Role) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	ctx = context.WithValue(ctx, shared.UserRoleContextKey, role)
	return r.WithContext(ctx)
}

// withURLParam attaches a chi route parameter to the request so handlers can
// read it without going through a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// executeRequest runs the handler and captures the response.
func executeRequest(handler http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, r)
	return rr
}
