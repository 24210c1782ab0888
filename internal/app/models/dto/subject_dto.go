package dto

import (
	"github.com/emirkaya/schoolhub/internal/app/models"
)

// SubjectRequest represents subject creation or rename data
type SubjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// SubjectResponse represents a subject
type SubjectResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SubjectListResponse represents a list of subjects
type SubjectListResponse struct {
	Subjects []SubjectResponse `json:"subjects"`
}

// NewSubjectResponse maps a subject model to its response form.
func NewSubjectResponse(subject *models.Subject) SubjectResponse {
	return SubjectResponse{ID: subject.ID, Name: subject.Name}
}
