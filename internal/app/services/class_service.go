package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/emirkaya/schoolhub/internal/app/auth"
	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
)

// classStore is the class persistence surface the service needs.
type classStore interface {
	CreateClass(ctx context.Context, class *models.Class) (int64, error)
	GetClassByID(ctx context.Context, id int64) (*models.Class, error)
	ListClasses(ctx context.Context, teacherID *int64) ([]*models.Class, error)
	UpdateClass(ctx context.Context, id int64, name *string, isActive *bool) (*models.Class, error)
	DeleteClass(ctx context.Context, id int64) error
}

// ClassService handles class management operations
type ClassService struct {
	classes classStore
	logger  zerolog.Logger
}

// NewClassService creates a new ClassService
func NewClassService(classes classStore, logger zerolog.Logger) *ClassService {
	return &ClassService{
		classes: classes,
		logger:  logger,
	}
}

// CreateClass creates a class. Teachers create classes for themselves; an
// admin must name the owning teacher explicitly.
func (s *ClassService) CreateClass(ctx context.Context, actor appauth.Actor, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	var teacherID int64
	switch {
	case req.TeacherID != nil:
		teacherID = *req.TeacherID
	case actor.TeacherID != nil:
		teacherID = *actor.TeacherID
	default:
		return nil, apperrors.ErrTeacherIDMissing
	}

	if !appauth.CanAccess(actor, appauth.ActionClassCreate, appauth.ClassResource(teacherID)) {
		return nil, apperrors.ErrPermissionDenied
	}

	class := &models.Class{
		Name:      req.Name,
		TeacherID: teacherID,
		IsActive:  true,
	}

	id, err := s.classes.CreateClass(ctx, class)
	if err != nil {
		return nil, err
	}
	class.ID = id

	s.logger.Info().Int64("classID", id).Int64("teacherID", teacherID).Msg("Class created")

	resp := dto.NewClassResponse(class)
	return &resp, nil
}

// GetClass retrieves a class visible to the actor.
func (s *ClassService) GetClass(ctx context.Context, actor appauth.Actor, id int64) (*dto.ClassResponse, error) {
	class, err := s.classes.GetClassByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appauth.CanAccess(actor, appauth.ActionClassRead, appauth.ClassResource(class.TeacherID)) {
		return nil, apperrors.ErrPermissionDenied
	}

	resp := dto.NewClassResponse(class)
	return &resp, nil
}

// ListClasses lists classes scoped to the actor: admins and students see
// the whole catalogue, teachers see only their own classes.
func (s *ClassService) ListClasses(ctx context.Context, actor appauth.Actor) (*dto.ClassListResponse, error) {
	var filter *int64
	if actor.Role == models.RoleTeacher {
		if actor.TeacherID == nil {
			return nil, apperrors.ErrPermissionDenied
		}
		filter = actor.TeacherID
	}

	classes, err := s.classes.ListClasses(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ClassListResponse{Classes: make([]dto.ClassResponse, 0, len(classes))}
	for _, class := range classes {
		resp.Classes = append(resp.Classes, dto.NewClassResponse(class))
	}
	return resp, nil
}

// ListClassesByTeacher lists the classes a teacher owns. Callers gate
// access themselves; the teacher roster is staff-visible.
func (s *ClassService) ListClassesByTeacher(ctx context.Context, teacherID int64) ([]dto.ClassResponse, error) {
	classes, err := s.classes.ListClasses(ctx, &teacherID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ClassResponse, 0, len(classes))
	for _, class := range classes {
		resp = append(resp, dto.NewClassResponse(class))
	}
	return resp, nil
}

// UpdateClass partially updates a class.
func (s *ClassService) UpdateClass(ctx context.Context, actor appauth.Actor, id int64, req *dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	class, err := s.classes.GetClassByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appauth.CanAccess(actor, appauth.ActionClassUpdate, appauth.ClassResource(class.TeacherID)) {
		return nil, apperrors.ErrPermissionDenied
	}

	updated, err := s.classes.UpdateClass(ctx, id, req.Name, req.IsActive)
	if err != nil {
		return nil, err
	}

	resp := dto.NewClassResponse(updated)
	return &resp, nil
}

// DeleteClass removes a class together with its enrollments and their grades.
func (s *ClassService) DeleteClass(ctx context.Context, actor appauth.Actor, id int64) error {
	class, err := s.classes.GetClassByID(ctx, id)
	if err != nil {
		return err
	}

	if !appauth.CanAccess(actor, appauth.ActionClassDelete, appauth.ClassResource(class.TeacherID)) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.classes.DeleteClass(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("classID", id).Msg("Class deleted")
	return nil
}
