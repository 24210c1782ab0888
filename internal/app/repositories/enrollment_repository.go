package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
	"github.com/emirkaya/schoolhub/internal/pkg/dberrors"
	"github.com/emirkaya/schoolhub/internal/pkg/logger"
)

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateEnrollment inserts a new enrollment row. A unique violation on the
// (student_id, class_id) index is reported as ErrAlreadyEnrolled: the index
// is the authoritative guard against concurrent identical enrolls.
func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, studentID, classID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "class_id", "enrollment_date", "is_active").
		Values(studentID, classID, time.Now(), true).
		Suffix("RETURNING id, student_id, class_id, enrollment_date, is_active").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create enrollment SQL")
		return nil, fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	enrollment := &models.Enrollment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&enrollment.ID, &enrollment.StudentID, &enrollment.ClassID,
		&enrollment.EnrollmentDate, &enrollment.IsActive)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_class_idx") {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err, "enrollments_student_id_fkey") {
			return nil, apperrors.ErrStudentNotFound
		}
		if dberrors.IsForeignKeyViolation(err, "enrollments_class_id_fkey") {
			return nil, apperrors.ErrClassNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("classID", classID).Msg("Error executing create enrollment query")
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	return enrollment, nil
}

// GetEnrollmentByID retrieves an enrollment by id.
func (r *EnrollmentRepository) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "class_id", "enrollment_date", "is_active").
		From("enrollments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	enrollment := &models.Enrollment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&enrollment.ID, &enrollment.StudentID, &enrollment.ClassID,
		&enrollment.EnrollmentDate, &enrollment.IsActive)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return enrollment, nil
}

// GetEnrollmentDetail retrieves an enrollment joined to its class ownership.
func (r *EnrollmentRepository) GetEnrollmentDetail(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	sql, args, err := r.sb.Select(
		"e.id", "e.student_id", "e.class_id", "e.enrollment_date", "e.is_active",
		"c.name", "c.teacher_id").
		From("enrollments e").
		Join("classes c ON c.id = e.class_id").
		Where(squirrel.Eq{"e.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment detail query: %w", err)
	}

	detail := &models.EnrollmentDetail{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&detail.ID, &detail.StudentID, &detail.ClassID, &detail.EnrollmentDate, &detail.IsActive,
		&detail.ClassName, &detail.ClassTeacherID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment detail: %w", err)
	}

	return detail, nil
}

// GetEnrollmentByStudentAndClass looks up the single (student, class) row in
// any activity state.
func (r *EnrollmentRepository) GetEnrollmentByStudentAndClass(ctx context.Context, studentID, classID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "class_id", "enrollment_date", "is_active").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "class_id": classID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	enrollment := &models.Enrollment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&enrollment.ID, &enrollment.StudentID, &enrollment.ClassID,
		&enrollment.EnrollmentDate, &enrollment.IsActive)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return enrollment, nil
}

// ListEnrollments retrieves all enrollments.
func (r *EnrollmentRepository) ListEnrollments(ctx context.Context) ([]*models.Enrollment, error) {
	return r.listWhere(ctx, nil)
}

// ListEnrollmentsByStudent retrieves a student's enrollments.
func (r *EnrollmentRepository) ListEnrollmentsByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return r.listWhere(ctx, squirrel.Eq{"student_id": studentID})
}

// ListEnrollmentsByClass retrieves a class's enrollments.
func (r *EnrollmentRepository) ListEnrollmentsByClass(ctx context.Context, classID int64) ([]*models.Enrollment, error) {
	return r.listWhere(ctx, squirrel.Eq{"class_id": classID})
}

func (r *EnrollmentRepository) listWhere(ctx context.Context, where squirrel.Eq) ([]*models.Enrollment, error) {
	builder := r.sb.Select("id", "student_id", "class_id", "enrollment_date", "is_active").
		From("enrollments").
		OrderBy("id")
	if where != nil {
		builder = builder.Where(where)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment := &models.Enrollment{}
		if err := rows.Scan(
			&enrollment.ID, &enrollment.StudentID, &enrollment.ClassID,
			&enrollment.EnrollmentDate, &enrollment.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}

	return enrollments, rows.Err()
}

// Reactivate flips an inactive enrollment back to active and refreshes its
// enrollment date. Re-enrollment reuses the existing row id.
func (r *EnrollmentRepository) Reactivate(ctx context.Context, id int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Update("enrollments").
		Set("is_active", true).
		Set("enrollment_date", time.Now()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, student_id, class_id, enrollment_date, is_active").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build reactivate enrollment query: %w", err)
	}

	enrollment := &models.Enrollment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&enrollment.ID, &enrollment.StudentID, &enrollment.ClassID,
		&enrollment.EnrollmentDate, &enrollment.IsActive)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error reactivating enrollment: %w", err)
	}

	return enrollment, nil
}

// Deactivate soft-deletes an enrollment.
func (r *EnrollmentRepository) Deactivate(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build deactivate enrollment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deactivating enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// DeleteEnrollment hard-deletes an enrollment row.
func (r *EnrollmentRepository) DeleteEnrollment(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete enrollment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error executing delete enrollment query")
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// CountGrades counts grades referencing an enrollment. Hard deletion is
// rejected while this is non-zero.
func (r *EnrollmentRepository) CountGrades(ctx context.Context, enrollmentID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM grades WHERE enrollment_id = $1`,
		enrollmentID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting grades: %w", err)
	}

	return count, nil
}
