// Package store defines the persistence interfaces consumed by the service
// and API layers, along with the sentinel errors every implementation must
// return. Concrete implementations live in internal/platform/postgres.
//
// Uniqueness rules that the core relies on (one enrollment per user and
// course, one completion per user and lesson, one user per email) are
// enforced by database constraints, not application-level checks.
// Implementations translate constraint violations to ErrDuplicate-derived
// sentinels so services can map them to conflicts.
package store
