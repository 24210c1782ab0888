package dto

import (
	"time"

	"github.com/emirkaya/schoolhub/internal/app/models"
)

// CreateGradeRequest represents grade creation data
type CreateGradeRequest struct {
	EnrollmentID   int64    `json:"enrollmentId" binding:"required,min=1"`
	AssignmentName string   `json:"assignmentName" binding:"required,min=1,max=200"`
	GradeValue     int      `json:"gradeValue" binding:"required"`
	Weight         *float64 `json:"weight,omitempty" binding:"omitempty,gt=0"`
	Comments       *string  `json:"comments,omitempty"`
}

// UpdateGradeRequest represents partial grade update data
type UpdateGradeRequest struct {
	AssignmentName *string  `json:"assignmentName,omitempty" binding:"omitempty,min=1,max=200"`
	GradeValue     *int     `json:"gradeValue,omitempty"`
	Weight         *float64 `json:"weight,omitempty" binding:"omitempty,gt=0"`
	Comments       *string  `json:"comments,omitempty"`
}

// GradeResponse represents a grade with its enrollment context
type GradeResponse struct {
	ID             int64     `json:"id"`
	EnrollmentID   int64     `json:"enrollmentId"`
	StudentID      int64     `json:"studentId,omitempty"`
	ClassID        int64     `json:"classId,omitempty"`
	ClassName      string    `json:"className,omitempty"`
	AssignmentName string    `json:"assignmentName"`
	GradeValue     int       `json:"gradeValue"`
	Weight         float64   `json:"weight"`
	Comments       *string   `json:"comments,omitempty"`
	GradedBy       int64     `json:"gradedBy"`
	GradedAt       time.Time `json:"gradedAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// GradeListResponse represents a list of grades
type GradeListResponse struct {
	Grades []GradeResponse `json:"grades"`
}

// NewGradeResponse maps a grade model to its response form.
func NewGradeResponse(grade *models.Grade) GradeResponse {
	return GradeResponse{
		ID:             grade.ID,
		EnrollmentID:   grade.EnrollmentID,
		AssignmentName: grade.AssignmentName,
		GradeValue:     grade.GradeValue,
		Weight:         grade.Weight,
		Comments:       grade.Comments,
		GradedBy:       grade.GradedBy,
		GradedAt:       grade.GradedAt,
		UpdatedAt:      grade.UpdatedAt,
	}
}

// NewGradeDetailResponse maps a grade detail to its response form.
func NewGradeDetailResponse(detail *models.GradeDetail) GradeResponse {
	resp := NewGradeResponse(&detail.Grade)
	resp.StudentID = detail.StudentID
	resp.ClassID = detail.ClassID
	resp.ClassName = detail.ClassName
	return resp
}
