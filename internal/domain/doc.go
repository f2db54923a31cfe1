// Package domain defines the core business entities of the language-learning
// platform (users, courses, lessons, enrollments, dictionary entries), their
// validation rules, and the pure ownership policy that governs who may mutate
// courses and lessons.
//
// The package has no dependencies on storage or transport concerns; entities
// are plain structs validated by their own methods, and errors are sentinel
// values suitable for errors.Is checks in higher layers.
package domain
