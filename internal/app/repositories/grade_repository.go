package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
	"github.com/emirkaya/schoolhub/internal/pkg/dberrors"
	"github.com/emirkaya/schoolhub/internal/pkg/logger"
)

// GradeRepository handles grade database operations
type GradeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const gradeDetailColumns = `
	g.id, g.enrollment_id, g.assignment_name, g.grade_value, g.weight,
	g.comments, g.graded_by, g.graded_at, g.updated_at,
	e.student_id, e.class_id, c.name, c.teacher_id`

// CreateGrade inserts a new grade row.
func (r *GradeRepository) CreateGrade(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	sql, args, err := r.sb.Insert("grades").
		Columns("enrollment_id", "assignment_name", "grade_value", "weight", "comments", "graded_by").
		Values(grade.EnrollmentID, grade.AssignmentName, grade.GradeValue, grade.Weight, grade.Comments, grade.GradedBy).
		Suffix("RETURNING id, graded_at, updated_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create grade SQL")
		return nil, fmt.Errorf("failed to build create grade query: %w", err)
	}

	created := *grade
	err = r.db.QueryRow(ctx, sql, args...).Scan(&created.ID, &created.GradedAt, &created.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "grades_enrollment_id_fkey") {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		if dberrors.IsCheckViolation(err) {
			return nil, apperrors.ErrGradeOutOfBounds
		}
		logger.Error().Err(err).Int64("enrollmentID", grade.EnrollmentID).Msg("Error executing create grade query")
		return nil, fmt.Errorf("error creating grade: %w", err)
	}

	return &created, nil
}

// GetGradeByID retrieves a grade joined to its enrollment and class.
func (r *GradeRepository) GetGradeByID(ctx context.Context, id int64) (*models.GradeDetail, error) {
	sql, args, err := r.sb.Select(gradeDetailColumns).
		From("grades g").
		Join("enrollments e ON e.id = g.enrollment_id").
		Join("classes c ON c.id = e.class_id").
		Where(squirrel.Eq{"g.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get grade query: %w", err)
	}

	detail := &models.GradeDetail{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&detail.ID, &detail.EnrollmentID, &detail.AssignmentName, &detail.GradeValue, &detail.Weight,
		&detail.Comments, &detail.GradedBy, &detail.GradedAt, &detail.UpdatedAt,
		&detail.StudentID, &detail.ClassID, &detail.ClassName, &detail.ClassTeacherID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}

	return detail, nil
}

// ListGradesByStudent retrieves all grades for a student across classes.
func (r *GradeRepository) ListGradesByStudent(ctx context.Context, studentID int64) ([]*models.GradeDetail, error) {
	return r.listWhere(ctx, squirrel.Eq{"e.student_id": studentID})
}

// ListGradesByClass retrieves all grades recorded in a class.
func (r *GradeRepository) ListGradesByClass(ctx context.Context, classID int64) ([]*models.GradeDetail, error) {
	return r.listWhere(ctx, squirrel.Eq{"e.class_id": classID})
}

// ListGradesByEnrollment retrieves all grades for one enrollment.
func (r *GradeRepository) ListGradesByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.GradeDetail, error) {
	return r.listWhere(ctx, squirrel.Eq{"g.enrollment_id": enrollmentID})
}

func (r *GradeRepository) listWhere(ctx context.Context, where squirrel.Eq) ([]*models.GradeDetail, error) {
	sql, args, err := r.sb.Select(gradeDetailColumns).
		From("grades g").
		Join("enrollments e ON e.id = g.enrollment_id").
		Join("classes c ON c.id = e.class_id").
		Where(where).
		OrderBy("g.graded_at DESC", "g.id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing grades: %w", err)
	}
	defer rows.Close()

	var grades []*models.GradeDetail
	for rows.Next() {
		detail := &models.GradeDetail{}
		if err := rows.Scan(
			&detail.ID, &detail.EnrollmentID, &detail.AssignmentName, &detail.GradeValue, &detail.Weight,
			&detail.Comments, &detail.GradedBy, &detail.GradedAt, &detail.UpdatedAt,
			&detail.StudentID, &detail.ClassID, &detail.ClassName, &detail.ClassTeacherID); err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grades = append(grades, detail)
	}

	return grades, rows.Err()
}

// UpdateGrade partially updates a grade. Nil fields keep their current value.
func (r *GradeRepository) UpdateGrade(ctx context.Context, id int64, assignmentName *string, gradeValue *int, weight *float64, comments *string) (*models.Grade, error) {
	sql, args, err := r.sb.Update("grades").
		Set("assignment_name", squirrel.Expr("COALESCE(?, assignment_name)", assignmentName)).
		Set("grade_value", squirrel.Expr("COALESCE(?, grade_value)", gradeValue)).
		Set("weight", squirrel.Expr("COALESCE(?, weight)", weight)).
		Set("comments", squirrel.Expr("COALESCE(?, comments)", comments)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, enrollment_id, assignment_name, grade_value, weight, comments, graded_by, graded_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build update grade query: %w", err)
	}

	grade := &models.Grade{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&grade.ID, &grade.EnrollmentID, &grade.AssignmentName, &grade.GradeValue, &grade.Weight,
		&grade.Comments, &grade.GradedBy, &grade.GradedAt, &grade.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		if dberrors.IsCheckViolation(err) {
			return nil, apperrors.ErrGradeOutOfBounds
		}
		return nil, fmt.Errorf("error updating grade: %w", err)
	}

	return grade, nil
}

// DeleteGrade removes a grade row.
func (r *GradeRepository) DeleteGrade(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("grades").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete grade query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("gradeID", id).Msg("Error executing delete grade query")
		return fmt.Errorf("error deleting grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}
