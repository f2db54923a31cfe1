package domain

// CanMutateCourse reports whether the actor may update or delete the course
// and its lessons: true iff the actor owns the course or is an admin.
//
// The predicate is pure. Callers fetch the course first and are responsible
// for reporting not-found when it is absent and forbidden when this returns
// false. Ownership is never transferable.
func CanMutateCourse(actor *User, course *Course) bool {
	if actor == nil || course == nil {
		return false
	}
	return actor.ID == course.TeacherID || actor.Role == RoleAdmin
}

// CanMutateLesson reports whether the actor may mutate a lesson. The lesson's
// parent course decides: lessons have no owner of their own.
func CanMutateLesson(actor *User, parentCourse *Course) bool {
	return CanMutateCourse(actor, parentCourse)
}
