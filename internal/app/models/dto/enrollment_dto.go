package dto

import (
	"time"

	"github.com/emirkaya/schoolhub/internal/app/models"
)

// CreateEnrollmentRequest represents a single enrollment request
type CreateEnrollmentRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
	ClassID   int64 `json:"classId" binding:"required,min=1"`
}

// BulkEnrollmentRequest enrolls many students into one class at once
type BulkEnrollmentRequest struct {
	ClassID    int64   `json:"classId" binding:"required,min=1"`
	StudentIDs []int64 `json:"studentIds" binding:"required,min=1,dive,min=1"`
}

// EnrollmentResponse represents an enrollment
type EnrollmentResponse struct {
	ID             int64     `json:"id"`
	StudentID      int64     `json:"studentId"`
	ClassID        int64     `json:"classId"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	IsActive       bool      `json:"isActive"`
}

// EnrollmentListResponse represents a list of enrollments
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
}

// BulkEnrollmentResponse classifies every requested student id by outcome
type BulkEnrollmentResponse struct {
	Successful      []int64 `json:"successful"`
	AlreadyEnrolled []int64 `json:"alreadyEnrolled"`
	Failed          []int64 `json:"failed"`
}

// NewEnrollmentResponse maps an enrollment model to its response form.
func NewEnrollmentResponse(enrollment *models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:             enrollment.ID,
		StudentID:      enrollment.StudentID,
		ClassID:        enrollment.ClassID,
		EnrollmentDate: enrollment.EnrollmentDate,
		IsActive:       enrollment.IsActive,
	}
}
