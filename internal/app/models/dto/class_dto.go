package dto

import (
	"github.com/emirkaya/schoolhub/internal/app/models"
)

// CreateClassRequest represents class creation data. TeacherID is required
// for admins; teachers always create classes for themselves.
type CreateClassRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	TeacherID *int64 `json:"teacherId,omitempty" binding:"omitempty,min=1"`
}

// UpdateClassRequest represents partial class update data
type UpdateClassRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ClassResponse represents a class
type ClassResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	TeacherID int64  `json:"teacherId"`
	IsActive  bool   `json:"isActive"`
}

// ClassListResponse represents a list of classes
type ClassListResponse struct {
	Classes []ClassResponse `json:"classes"`
}

// NewClassResponse maps a class model to its response form.
func NewClassResponse(class *models.Class) ClassResponse {
	return ClassResponse{
		ID:        class.ID,
		Name:      class.Name,
		TeacherID: class.TeacherID,
		IsActive:  class.IsActive,
	}
}
