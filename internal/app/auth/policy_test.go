package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emirkaya/schoolhub/internal/app/models"
)

func ptr(v int64) *int64 { return &v }

func adminActor() Actor {
	return Actor{UserID: 1, Role: models.RoleAdmin}
}

func teacherActor(teacherID int64) Actor {
	return Actor{UserID: 2, Role: models.RoleTeacher, TeacherID: ptr(teacherID)}
}

func studentActor(studentID int64) Actor {
	return Actor{UserID: 3, Role: models.RoleStudent, StudentID: ptr(studentID)}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name   string
		actor  Actor
		action Action
		res    Resource
		want   bool
	}{
		{"admin may create accounts", adminActor(), ActionAccountCreate, Resource{}, true},
		{"admin may delete enrollments", adminActor(), ActionEnrollmentDelete, Resource{}, true},
		{"admin may write subjects", adminActor(), ActionSubjectWrite, Resource{}, true},

		{"teacher cannot create accounts", teacherActor(10), ActionAccountCreate, Resource{}, false},
		{"student cannot create accounts", studentActor(20), ActionAccountCreate, Resource{}, false},

		{"user reads own account", studentActor(20), ActionAccountRead, AccountResource(3), true},
		{"user cannot read other account", studentActor(20), ActionAccountRead, AccountResource(4), false},
		{"user updates own account", teacherActor(10), ActionAccountUpdate, AccountResource(2), true},
		{"user cannot list accounts", teacherActor(10), ActionAccountList, Resource{}, false},

		{"teacher updates owned class", teacherActor(10), ActionClassUpdate, ClassResource(10), true},
		{"teacher cannot update foreign class", teacherActor(10), ActionClassUpdate, ClassResource(11), false},
		{"teacher creates class for self", teacherActor(10), ActionClassCreate, ClassResource(10), true},
		{"teacher cannot create class for other", teacherActor(10), ActionClassCreate, ClassResource(11), false},
		{"student reads any class", studentActor(20), ActionClassRead, ClassResource(10), true},
		{"teacher reads owned class", teacherActor(10), ActionClassRead, ClassResource(10), true},
		{"teacher cannot read foreign class", teacherActor(10), ActionClassRead, ClassResource(11), false},
		{"student cannot update class", studentActor(20), ActionClassUpdate, ClassResource(10), false},
		{"student cannot delete class", studentActor(20), ActionClassDelete, ClassResource(10), false},

		{"class teacher reads enrollment", teacherActor(10), ActionEnrollmentRead, EnrollmentResource(20, 10), true},
		{"other teacher cannot read enrollment", teacherActor(11), ActionEnrollmentRead, EnrollmentResource(20, 10), false},
		{"student reads own enrollment", studentActor(20), ActionEnrollmentRead, EnrollmentResource(20, 10), true},
		{"student cannot read foreign enrollment", studentActor(21), ActionEnrollmentRead, EnrollmentResource(20, 10), false},
		{"teacher cannot create enrollment", teacherActor(10), ActionEnrollmentCreate, Resource{}, false},
		{"student cannot create enrollment", studentActor(20), ActionEnrollmentCreate, Resource{}, false},

		{"class teacher grades", teacherActor(10), ActionGradeCreate, EnrollmentResource(20, 10), true},
		{"other teacher cannot grade", teacherActor(11), ActionGradeCreate, EnrollmentResource(20, 10), false},
		{"student cannot grade", studentActor(20), ActionGradeCreate, EnrollmentResource(20, 10), false},
		{"class teacher updates grade", teacherActor(10), ActionGradeUpdate, EnrollmentResource(20, 10), true},
		{"class teacher deletes grade", teacherActor(10), ActionGradeDelete, EnrollmentResource(20, 10), true},

		{"student reads own grades", studentActor(20), ActionGradeRead, StudentScopedResource(20), true},
		{"student cannot read foreign grades", studentActor(21), ActionGradeRead, StudentScopedResource(20), false},
		{"teacher reads student grade listing", teacherActor(10), ActionGradeRead, StudentScopedResource(20), true},
		{"class teacher reads class grades", teacherActor(10), ActionGradeRead, EnrollmentResource(20, 10), true},
		{"other teacher cannot read class grades", teacherActor(11), ActionGradeRead, EnrollmentResource(20, 10), false},

		{"teacher cannot write subjects", teacherActor(10), ActionSubjectWrite, Resource{}, false},
		{"student cannot write subjects", studentActor(20), ActionSubjectWrite, Resource{}, false},

		{"unknown action denied", teacherActor(10), Action("bogus:action"), Resource{}, false},
		{"empty resource denies ownership checks", teacherActor(10), ActionClassUpdate, Resource{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.actor, tt.action, tt.res))
		})
	}
}

func TestActorOwnership(t *testing.T) {
	teacher := teacherActor(10)
	assert.True(t, teacher.OwnsTeacherID(10))
	assert.False(t, teacher.OwnsTeacherID(11))
	assert.False(t, teacher.OwnsStudentID(10))

	student := studentActor(20)
	assert.True(t, student.OwnsStudentID(20))
	assert.False(t, student.OwnsStudentID(21))

	admin := adminActor()
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.OwnsTeacherID(10))
	assert.False(t, admin.OwnsStudentID(20))
}
