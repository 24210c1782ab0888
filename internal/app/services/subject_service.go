package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/emirkaya/schoolhub/internal/app/auth"
	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/app/repositories"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
)

// SubjectService handles the subject catalogue. Reads are open to any
// authenticated user; writes are admin-only.
type SubjectService struct {
	subjects *repositories.SubjectRepository
	logger   zerolog.Logger
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(subjects *repositories.SubjectRepository, logger zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjects: subjects,
		logger:   logger,
	}
}

// CreateSubject adds a subject to the catalogue.
func (s *SubjectService) CreateSubject(ctx context.Context, actor appauth.Actor, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	if !appauth.CanAccess(actor, appauth.ActionSubjectWrite, appauth.Resource{}) {
		return nil, apperrors.ErrPermissionDenied
	}

	subject, err := s.subjects.CreateSubject(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	resp := dto.NewSubjectResponse(subject)
	return &resp, nil
}

// GetSubject retrieves a subject by id.
func (s *SubjectService) GetSubject(ctx context.Context, id int64) (*dto.SubjectResponse, error) {
	subject, err := s.subjects.GetSubjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSubjectResponse(subject)
	return &resp, nil
}

// ListSubjects lists the whole catalogue.
func (s *SubjectService) ListSubjects(ctx context.Context) (*dto.SubjectListResponse, error) {
	subjects, err := s.subjects.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.SubjectListResponse{Subjects: make([]dto.SubjectResponse, 0, len(subjects))}
	for _, subject := range subjects {
		resp.Subjects = append(resp.Subjects, dto.NewSubjectResponse(subject))
	}
	return resp, nil
}

// UpdateSubject renames a subject.
func (s *SubjectService) UpdateSubject(ctx context.Context, actor appauth.Actor, id int64, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	if !appauth.CanAccess(actor, appauth.ActionSubjectWrite, appauth.Resource{}) {
		return nil, apperrors.ErrPermissionDenied
	}

	subject, err := s.subjects.UpdateSubject(ctx, id, req.Name)
	if err != nil {
		return nil, err
	}

	resp := dto.NewSubjectResponse(subject)
	return &resp, nil
}

// DeleteSubject removes a subject from the catalogue.
func (s *SubjectService) DeleteSubject(ctx context.Context, actor appauth.Actor, id int64) error {
	if !appauth.CanAccess(actor, appauth.ActionSubjectWrite, appauth.Resource{}) {
		return apperrors.ErrPermissionDenied
	}
	return s.subjects.DeleteSubject(ctx, id)
}
