// Package postgres provides PostgreSQL implementations of the store
// interfaces using the pgx driver in database/sql mode.
//
// Every implementation translates driver errors through MapError so that
// callers only ever see the sentinel errors declared in internal/store:
// unique-constraint violations become store.ErrDuplicate, missing rows
// become store.ErrNotFound, and connection-level failures become
// store.ErrUnavailable. The unique constraints on enrollments
// (user_id, course_id) and lesson_completions (user_id, lesson_id) declared
// in the migrations are what make concurrent duplicate writes safe; the
// stores never rely on check-then-insert.
package postgres
