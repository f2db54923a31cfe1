// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services live in subpackages, one per domain area:
//
//   - auth: JWT issuing/validation and password hashing
//   - enrollment: course enrollment, lesson completion, and progress
//
// Services receive dependencies through constructor injection, apply
// transactional boundaries when an operation spans multiple repositories,
// and translate store-level errors into application-level errors that the
// API layer maps to HTTP responses. They depend on domain entities and
// repository interfaces, never on infrastructure implementations.
package service
