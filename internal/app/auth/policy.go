// Package auth holds the role/ownership authorization policy. Decisions are
// pure functions of the actor and the target resource's ownership tags;
// anything not explicitly allowed is denied.
package auth

import (
	"github.com/emirkaya/schoolhub/internal/app/models"
)

// Actor is the authenticated caller as resolved from a session: the account
// role plus the optional role-profile ids used for ownership comparisons.
type Actor struct {
	UserID    int64
	Role      models.RoleType
	StudentID *int64 // set iff Role == student
	TeacherID *int64 // set iff Role == teacher
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// OwnsTeacherID reports whether the actor is the teacher with the given id.
func (a Actor) OwnsTeacherID(teacherID int64) bool {
	return a.TeacherID != nil && *a.TeacherID == teacherID
}

// OwnsStudentID reports whether the actor is the student with the given id.
func (a Actor) OwnsStudentID(studentID int64) bool {
	return a.StudentID != nil && *a.StudentID == studentID
}

// Action identifies an operation subject to authorization.
type Action string

// Declared actions. Anything outside this list resolves to deny.
const (
	ActionAccountCreate Action = "account:create"
	ActionAccountList   Action = "account:list"
	ActionAccountRead   Action = "account:read"
	ActionAccountUpdate Action = "account:update"
	ActionAccountDelete Action = "account:delete"

	ActionClassRead   Action = "class:read"
	ActionClassCreate Action = "class:create"
	ActionClassUpdate Action = "class:update"
	ActionClassDelete Action = "class:delete"

	ActionEnrollmentCreate Action = "enrollment:create"
	ActionEnrollmentDelete Action = "enrollment:delete"
	ActionEnrollmentList   Action = "enrollment:list"
	ActionEnrollmentRead   Action = "enrollment:read"

	ActionGradeCreate Action = "grade:create"
	ActionGradeUpdate Action = "grade:update"
	ActionGradeDelete Action = "grade:delete"
	ActionGradeRead   Action = "grade:read"

	ActionSubjectWrite Action = "subject:write"
)

// Resource carries the ownership tags of the target. Only the fields
// relevant to the action need to be set; nil means "no owner of that kind".
type Resource struct {
	OwnerUserID    *int64 // account-scoped resources (profiles)
	TeacherID      *int64 // class ownership
	StudentID      *int64 // enrollment/grade subject
	ClassTeacherID *int64 // owning teacher of the enrollment's/grade's class
}

// AccountResource tags a resource owned by a specific account.
func AccountResource(userID int64) Resource {
	return Resource{OwnerUserID: &userID}
}

// ClassResource tags a class owned by a teacher.
func ClassResource(teacherID int64) Resource {
	return Resource{TeacherID: &teacherID}
}

// EnrollmentResource tags an enrollment by its student and the owning
// teacher of its class.
func EnrollmentResource(studentID, classTeacherID int64) Resource {
	return Resource{StudentID: &studentID, ClassTeacherID: &classTeacherID}
}

// StudentScopedResource tags a per-student listing with no single class.
func StudentScopedResource(studentID int64) Resource {
	return Resource{StudentID: &studentID}
}

// CanAccess decides whether the actor may perform the action on the
// resource. Unmatched (actor, action, resource) triples resolve to false.
func CanAccess(actor Actor, action Action, res Resource) bool {
	// Admin side of the table: every declared action is allowed.
	if actor.IsAdmin() {
		return true
	}

	switch action {
	case ActionAccountRead, ActionAccountUpdate:
		// Non-admins may only touch their own profile.
		return res.OwnerUserID != nil && *res.OwnerUserID == actor.UserID

	case ActionClassRead:
		// The catalogue is open to students; teachers are scoped to the
		// classes they own.
		switch actor.Role {
		case models.RoleStudent:
			return true
		case models.RoleTeacher:
			return res.TeacherID != nil && actor.OwnsTeacherID(*res.TeacherID)
		}
		return false

	case ActionClassUpdate, ActionClassDelete:
		if actor.Role != models.RoleTeacher {
			return false
		}
		return res.TeacherID != nil && actor.OwnsTeacherID(*res.TeacherID)

	case ActionClassCreate:
		// A teacher may create classes they will own themselves.
		if actor.Role != models.RoleTeacher {
			return false
		}
		return res.TeacherID != nil && actor.OwnsTeacherID(*res.TeacherID)

	case ActionEnrollmentRead:
		switch actor.Role {
		case models.RoleTeacher:
			return res.ClassTeacherID != nil && actor.OwnsTeacherID(*res.ClassTeacherID)
		case models.RoleStudent:
			return res.StudentID != nil && actor.OwnsStudentID(*res.StudentID)
		}
		return false

	case ActionGradeCreate, ActionGradeUpdate, ActionGradeDelete:
		if actor.Role != models.RoleTeacher {
			return false
		}
		return res.ClassTeacherID != nil && actor.OwnsTeacherID(*res.ClassTeacherID)

	case ActionGradeRead:
		switch actor.Role {
		case models.RoleTeacher:
			// Teachers read grades class-scoped; when a class owner tag is
			// present it must match, otherwise the per-student listing is open
			// to teachers (the original exposes it to the whole staff).
			if res.ClassTeacherID != nil {
				return actor.OwnsTeacherID(*res.ClassTeacherID)
			}
			return true
		case models.RoleStudent:
			return res.StudentID != nil && actor.OwnsStudentID(*res.StudentID)
		}
		return false
	}

	// Account create/list/delete, enrollment mutation and listing, and
	// subject writes are admin-only; default-deny covers the rest.
	return false
}
