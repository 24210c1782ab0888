package dto

import (
	"time"

	"github.com/emirkaya/schoolhub/internal/app/models"
)

// UpdateUserRequest represents partial user update data. Role is immutable
// after creation and deliberately absent here.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Password  *string `json:"password,omitempty" binding:"omitempty,min=8"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// UserListResponse represents a list of users
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// StudentResponse represents a student profile with its account
type StudentResponse struct {
	ID             int64        `json:"id"`
	EnrollmentDate time.Time    `json:"enrollmentDate"`
	User           UserResponse `json:"user"`
}

// TeacherResponse represents a teacher profile with its account
type TeacherResponse struct {
	ID       int64        `json:"id"`
	HireDate time.Time    `json:"hireDate"`
	User     UserResponse `json:"user"`
}

// StudentDetailResponse is a student profile together with the slices of
// related data the caller is allowed to see.
type StudentDetailResponse struct {
	StudentResponse
	Enrollments []EnrollmentResponse `json:"enrollments,omitempty"`
	Grades      []GradeResponse      `json:"grades,omitempty"`
}

// TeacherDetailResponse is a teacher profile with the classes it owns.
type TeacherDetailResponse struct {
	TeacherResponse
	Classes []ClassResponse `json:"classes"`
}

// NewStudentResponse maps a student model to its response form.
func NewStudentResponse(student *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:             student.ID,
		EnrollmentDate: student.EnrollmentDate,
	}
	if student.User != nil {
		resp.User = NewUserResponse(student.User)
		resp.User.StudentID = &student.ID
	}
	return resp
}

// NewTeacherResponse maps a teacher model to its response form.
func NewTeacherResponse(teacher *models.Teacher) TeacherResponse {
	resp := TeacherResponse{
		ID:       teacher.ID,
		HireDate: teacher.HireDate,
	}
	if teacher.User != nil {
		resp.User = NewUserResponse(teacher.User)
		resp.User.TeacherID = &teacher.ID
	}
	return resp
}
