package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/emirkaya/schoolhub/internal/app/auth"
	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
)

// enrollmentStore is the enrollment persistence surface the service needs.
type enrollmentStore interface {
	CreateEnrollment(ctx context.Context, studentID, classID int64) (*models.Enrollment, error)
	GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetEnrollmentDetail(ctx context.Context, id int64) (*models.EnrollmentDetail, error)
	GetEnrollmentByStudentAndClass(ctx context.Context, studentID, classID int64) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context) ([]*models.Enrollment, error)
	ListEnrollmentsByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	ListEnrollmentsByClass(ctx context.Context, classID int64) ([]*models.Enrollment, error)
	Reactivate(ctx context.Context, id int64) (*models.Enrollment, error)
	Deactivate(ctx context.Context, id int64) error
	DeleteEnrollment(ctx context.Context, id int64) error
	CountGrades(ctx context.Context, enrollmentID int64) (int64, error)
}

// classGetter resolves classes for existence and ownership checks.
type classGetter interface {
	GetClassByID(ctx context.Context, id int64) (*models.Class, error)
}

// studentDirectory answers whether a student profile exists.
type studentDirectory interface {
	StudentExists(ctx context.Context, id int64) (bool, error)
}

// EnrollmentService handles enrollment lifecycle operations
type EnrollmentService struct {
	enrollments enrollmentStore
	classes     classGetter
	users       studentDirectory
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollments enrollmentStore,
	classes classGetter,
	users studentDirectory,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		classes:     classes,
		users:       users,
		logger:      logger,
	}
}

// Enroll places a student into an active class. Re-enrolling after a
// withdrawal reactivates the original row; enrolling twice is a conflict.
func (s *EnrollmentService) Enroll(ctx context.Context, actor appauth.Actor, req *dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	if !appauth.CanAccess(actor, appauth.ActionEnrollmentCreate, appauth.Resource{}) {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.checkClassOpen(ctx, req.ClassID); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollOne(ctx, req.StudentID, req.ClassID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewEnrollmentResponse(enrollment)
	return &resp, nil
}

// BulkEnroll enrolls many students into one class, reporting the outcome per
// student instead of failing the whole batch.
func (s *EnrollmentService) BulkEnroll(ctx context.Context, actor appauth.Actor, req *dto.BulkEnrollmentRequest) (*dto.BulkEnrollmentResponse, error) {
	if !appauth.CanAccess(actor, appauth.ActionEnrollmentCreate, appauth.Resource{}) {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.checkClassOpen(ctx, req.ClassID); err != nil {
		return nil, err
	}

	resp := &dto.BulkEnrollmentResponse{
		Successful:      []int64{},
		AlreadyEnrolled: []int64{},
		Failed:          []int64{},
	}

	for _, studentID := range req.StudentIDs {
		_, err := s.enrollOne(ctx, studentID, req.ClassID)
		switch {
		case err == nil:
			resp.Successful = append(resp.Successful, studentID)
		case apperrors.Is(err, apperrors.ErrAlreadyEnrolled):
			resp.AlreadyEnrolled = append(resp.AlreadyEnrolled, studentID)
		default:
			s.logger.Warn().Err(err).Int64("studentID", studentID).Int64("classID", req.ClassID).Msg("Bulk enrollment entry failed")
			resp.Failed = append(resp.Failed, studentID)
		}
	}

	return resp, nil
}

// checkClassOpen verifies the target class exists and accepts enrollments.
func (s *EnrollmentService) checkClassOpen(ctx context.Context, classID int64) error {
	class, err := s.classes.GetClassByID(ctx, classID)
	if err != nil {
		return err
	}
	if !class.IsActive {
		return apperrors.ErrClassNotActive
	}
	return nil
}

// enrollOne handles the single-student path shared by Enroll and BulkEnroll.
// The caller has already verified the class.
func (s *EnrollmentService) enrollOne(ctx context.Context, studentID, classID int64) (*models.Enrollment, error) {
	exists, err := s.users.StudentExists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrStudentNotFound
	}

	existing, err := s.enrollments.GetEnrollmentByStudentAndClass(ctx, studentID, classID)
	switch {
	case err == nil:
		if existing.IsActive {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		return s.enrollments.Reactivate(ctx, existing.ID)
	case apperrors.Is(err, apperrors.ErrEnrollmentNotFound):
		return s.enrollments.CreateEnrollment(ctx, studentID, classID)
	default:
		return nil, err
	}
}

// GetEnrollment retrieves one enrollment visible to the actor.
func (s *EnrollmentService) GetEnrollment(ctx context.Context, actor appauth.Actor, id int64) (*dto.EnrollmentResponse, error) {
	detail, err := s.enrollments.GetEnrollmentDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appauth.CanAccess(actor, appauth.ActionEnrollmentRead, appauth.EnrollmentResource(detail.StudentID, detail.ClassTeacherID)) {
		return nil, apperrors.ErrPermissionDenied
	}

	resp := dto.NewEnrollmentResponse(&detail.Enrollment)
	return &resp, nil
}

// ListEnrollments lists every enrollment.
func (s *EnrollmentService) ListEnrollments(ctx context.Context, actor appauth.Actor) (*dto.EnrollmentListResponse, error) {
	if !appauth.CanAccess(actor, appauth.ActionEnrollmentList, appauth.Resource{}) {
		return nil, apperrors.ErrPermissionDenied
	}

	enrollments, err := s.enrollments.ListEnrollments(ctx)
	if err != nil {
		return nil, err
	}
	return enrollmentList(enrollments), nil
}

// ListEnrollmentsByClass lists a class's enrollments for its owning teacher
// or an admin.
func (s *EnrollmentService) ListEnrollmentsByClass(ctx context.Context, actor appauth.Actor, classID int64) (*dto.EnrollmentListResponse, error) {
	class, err := s.classes.GetClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	res := appauth.Resource{ClassTeacherID: &class.TeacherID}
	if !appauth.CanAccess(actor, appauth.ActionEnrollmentRead, res) {
		return nil, apperrors.ErrPermissionDenied
	}

	enrollments, err := s.enrollments.ListEnrollmentsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	return enrollmentList(enrollments), nil
}

// ListEnrollmentsByStudent lists a student's enrollments for the student
// themselves or an admin.
func (s *EnrollmentService) ListEnrollmentsByStudent(ctx context.Context, actor appauth.Actor, studentID int64) (*dto.EnrollmentListResponse, error) {
	if !appauth.CanAccess(actor, appauth.ActionEnrollmentRead, appauth.StudentScopedResource(studentID)) {
		return nil, apperrors.ErrPermissionDenied
	}

	exists, err := s.users.StudentExists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrStudentNotFound
	}

	enrollments, err := s.enrollments.ListEnrollmentsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return enrollmentList(enrollments), nil
}

func enrollmentList(enrollments []*models.Enrollment) *dto.EnrollmentListResponse {
	resp := &dto.EnrollmentListResponse{Enrollments: make([]dto.EnrollmentResponse, 0, len(enrollments))}
	for _, enrollment := range enrollments {
		resp.Enrollments = append(resp.Enrollments, dto.NewEnrollmentResponse(enrollment))
	}
	return resp
}

// Deactivate withdraws a student from a class, keeping the history.
func (s *EnrollmentService) Deactivate(ctx context.Context, actor appauth.Actor, id int64) error {
	if !appauth.CanAccess(actor, appauth.ActionEnrollmentDelete, appauth.Resource{}) {
		return apperrors.ErrPermissionDenied
	}
	return s.enrollments.Deactivate(ctx, id)
}

// Delete hard-deletes an enrollment. Enrollments carrying grades are kept;
// withdraw instead to preserve the grade history.
func (s *EnrollmentService) Delete(ctx context.Context, actor appauth.Actor, id int64) error {
	if !appauth.CanAccess(actor, appauth.ActionEnrollmentDelete, appauth.Resource{}) {
		return apperrors.ErrPermissionDenied
	}

	if _, err := s.enrollments.GetEnrollmentByID(ctx, id); err != nil {
		return err
	}

	count, err := s.enrollments.CountGrades(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrEnrollmentHasGrades
	}

	if err := s.enrollments.DeleteEnrollment(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("enrollmentID", id).Msg("Enrollment deleted")
	return nil
}
