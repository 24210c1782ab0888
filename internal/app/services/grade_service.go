package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	appauth "github.com/emirkaya/schoolhub/internal/app/auth"
	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
)

// gradeStore is the grade persistence surface the service needs.
type gradeStore interface {
	CreateGrade(ctx context.Context, grade *models.Grade) (*models.Grade, error)
	GetGradeByID(ctx context.Context, id int64) (*models.GradeDetail, error)
	ListGradesByStudent(ctx context.Context, studentID int64) ([]*models.GradeDetail, error)
	ListGradesByClass(ctx context.Context, classID int64) ([]*models.GradeDetail, error)
	ListGradesByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.GradeDetail, error)
	UpdateGrade(ctx context.Context, id int64, assignmentName *string, gradeValue *int, weight *float64, comments *string) (*models.Grade, error)
	DeleteGrade(ctx context.Context, id int64) error
}

// enrollmentResolver looks up the enrollment a grade attaches to.
type enrollmentResolver interface {
	GetEnrollmentDetail(ctx context.Context, id int64) (*models.EnrollmentDetail, error)
}

// GradeBounds is the inclusive range of accepted grade values.
type GradeBounds struct {
	Min int
	Max int
}

// Contains reports whether a value falls inside the bounds.
func (b GradeBounds) Contains(value int) bool {
	return value >= b.Min && value <= b.Max
}

// GradeService handles grade recording and retrieval
type GradeService struct {
	grades      gradeStore
	enrollments enrollmentResolver
	classes     classGetter
	users       studentDirectory
	bounds      GradeBounds
	logger      zerolog.Logger
}

// NewGradeService creates a new GradeService
func NewGradeService(
	grades gradeStore,
	enrollments enrollmentResolver,
	classes classGetter,
	users studentDirectory,
	bounds GradeBounds,
	logger zerolog.Logger,
) *GradeService {
	return &GradeService{
		grades:      grades,
		enrollments: enrollments,
		classes:     classes,
		users:       users,
		bounds:      bounds,
		logger:      logger,
	}
}

// CreateGrade records a grade on an enrollment. Only the owning teacher of
// the enrollment's class (or an admin) may grade, and the value must fall
// inside the configured bounds.
func (s *GradeService) CreateGrade(ctx context.Context, actor appauth.Actor, req *dto.CreateGradeRequest) (*dto.GradeResponse, error) {
	detail, err := s.enrollments.GetEnrollmentDetail(ctx, req.EnrollmentID)
	if err != nil {
		return nil, err
	}

	res := appauth.EnrollmentResource(detail.StudentID, detail.ClassTeacherID)
	if !appauth.CanAccess(actor, appauth.ActionGradeCreate, res) {
		return nil, apperrors.ErrPermissionDenied
	}

	if !s.bounds.Contains(req.GradeValue) {
		return nil, s.boundsError(req.GradeValue)
	}

	weight := 1.0
	if req.Weight != nil {
		weight = *req.Weight
	}

	grade := &models.Grade{
		EnrollmentID:   req.EnrollmentID,
		AssignmentName: req.AssignmentName,
		GradeValue:     req.GradeValue,
		Weight:         weight,
		Comments:       req.Comments,
		GradedBy:       s.graderID(actor, detail.ClassTeacherID),
	}

	created, err := s.grades.CreateGrade(ctx, grade)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("gradeID", created.ID).Int64("enrollmentID", req.EnrollmentID).Msg("Grade recorded")

	resp := dto.NewGradeResponse(created)
	return &resp, nil
}

// graderID resolves the teacher credited with the grade. Admin-entered
// grades are attributed to the class owner.
func (s *GradeService) graderID(actor appauth.Actor, classTeacherID int64) int64 {
	if actor.TeacherID != nil {
		return *actor.TeacherID
	}
	return classTeacherID
}

func (s *GradeService) boundsError(value int) error {
	return apperrors.NewCustomError(
		apperrors.ErrGradeOutOfBounds,
		fmt.Sprintf("grade value %d is outside the allowed range %d..%d", value, s.bounds.Min, s.bounds.Max),
	)
}

// GetGrade retrieves a single grade visible to the actor.
func (s *GradeService) GetGrade(ctx context.Context, actor appauth.Actor, id int64) (*dto.GradeResponse, error) {
	detail, err := s.grades.GetGradeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := appauth.EnrollmentResource(detail.StudentID, detail.ClassTeacherID)
	if !appauth.CanAccess(actor, appauth.ActionGradeRead, res) {
		return nil, apperrors.ErrPermissionDenied
	}

	resp := dto.NewGradeDetailResponse(detail)
	return &resp, nil
}

// ListGradesByStudent lists a student's grades across all classes. Open to
// the student themselves, staff and admins.
func (s *GradeService) ListGradesByStudent(ctx context.Context, actor appauth.Actor, studentID int64) (*dto.GradeListResponse, error) {
	if !appauth.CanAccess(actor, appauth.ActionGradeRead, appauth.StudentScopedResource(studentID)) {
		return nil, apperrors.ErrPermissionDenied
	}

	exists, err := s.users.StudentExists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrStudentNotFound
	}

	grades, err := s.grades.ListGradesByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return gradeList(grades), nil
}

// ListGradesByClass lists every grade recorded in a class for its owning
// teacher or an admin.
func (s *GradeService) ListGradesByClass(ctx context.Context, actor appauth.Actor, classID int64) (*dto.GradeListResponse, error) {
	class, err := s.classes.GetClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	res := appauth.Resource{ClassTeacherID: &class.TeacherID}
	if !appauth.CanAccess(actor, appauth.ActionGradeRead, res) {
		return nil, apperrors.ErrPermissionDenied
	}

	grades, err := s.grades.ListGradesByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	return gradeList(grades), nil
}

// ListGradesByEnrollment lists an enrollment's grades.
func (s *GradeService) ListGradesByEnrollment(ctx context.Context, actor appauth.Actor, enrollmentID int64) (*dto.GradeListResponse, error) {
	detail, err := s.enrollments.GetEnrollmentDetail(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	res := appauth.EnrollmentResource(detail.StudentID, detail.ClassTeacherID)
	if !appauth.CanAccess(actor, appauth.ActionGradeRead, res) {
		return nil, apperrors.ErrPermissionDenied
	}

	grades, err := s.grades.ListGradesByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	return gradeList(grades), nil
}

func gradeList(grades []*models.GradeDetail) *dto.GradeListResponse {
	resp := &dto.GradeListResponse{Grades: make([]dto.GradeResponse, 0, len(grades))}
	for _, detail := range grades {
		resp.Grades = append(resp.Grades, dto.NewGradeDetailResponse(detail))
	}
	return resp
}

// UpdateGrade partially updates a grade.
func (s *GradeService) UpdateGrade(ctx context.Context, actor appauth.Actor, id int64, req *dto.UpdateGradeRequest) (*dto.GradeResponse, error) {
	detail, err := s.grades.GetGradeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := appauth.EnrollmentResource(detail.StudentID, detail.ClassTeacherID)
	if !appauth.CanAccess(actor, appauth.ActionGradeUpdate, res) {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.GradeValue != nil && !s.bounds.Contains(*req.GradeValue) {
		return nil, s.boundsError(*req.GradeValue)
	}

	updated, err := s.grades.UpdateGrade(ctx, id, req.AssignmentName, req.GradeValue, req.Weight, req.Comments)
	if err != nil {
		return nil, err
	}

	resp := dto.NewGradeResponse(updated)
	return &resp, nil
}

// DeleteGrade removes a grade.
func (s *GradeService) DeleteGrade(ctx context.Context, actor appauth.Actor, id int64) error {
	detail, err := s.grades.GetGradeByID(ctx, id)
	if err != nil {
		return err
	}

	res := appauth.EnrollmentResource(detail.StudentID, detail.ClassTeacherID)
	if !appauth.CanAccess(actor, appauth.ActionGradeDelete, res) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.grades.DeleteGrade(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("gradeID", id).Msg("Grade deleted")
	return nil
}
