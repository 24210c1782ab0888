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

// ClassRepository handles class database operations
type ClassRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateClass inserts a new class and returns its id.
func (r *ClassRepository) CreateClass(ctx context.Context, class *models.Class) (int64, error) {
	sql, args, err := r.sb.Insert("classes").
		Columns("name", "teacher_id", "is_active").
		Values(class.Name, class.TeacherID, class.IsActive).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create class SQL")
		return 0, fmt.Errorf("failed to build create class query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "classes_name_key") {
			return 0, apperrors.ErrClassNameExists
		}
		if dberrors.IsForeignKeyViolation(err, "classes_teacher_id_fkey") {
			return 0, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Str("name", class.Name).Msg("Error executing create class query")
		return 0, fmt.Errorf("error creating class: %w", err)
	}

	return id, nil
}

// GetClassByID retrieves a class by id.
func (r *ClassRepository) GetClassByID(ctx context.Context, id int64) (*models.Class, error) {
	sql, args, err := r.sb.Select("id", "name", "teacher_id", "is_active").
		From("classes").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	class := &models.Class{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&class.ID, &class.Name, &class.TeacherID, &class.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return class, nil
}

// ListClasses retrieves classes, optionally restricted to one teacher.
func (r *ClassRepository) ListClasses(ctx context.Context, teacherID *int64) ([]*models.Class, error) {
	builder := r.sb.Select("id", "name", "teacher_id", "is_active").
		From("classes").
		OrderBy("id")
	if teacherID != nil {
		builder = builder.Where(squirrel.Eq{"teacher_id": *teacherID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class := &models.Class{}
		if err := rows.Scan(&class.ID, &class.Name, &class.TeacherID, &class.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, class)
	}

	return classes, rows.Err()
}

// UpdateClass applies a partial update. Nil fields are left untouched;
// ownership is not transferable here.
func (r *ClassRepository) UpdateClass(ctx context.Context, id int64, name *string, isActive *bool) (*models.Class, error) {
	sql, args, err := r.sb.Update("classes").
		Set("name", squirrel.Expr("COALESCE(?, name)", name)).
		Set("is_active", squirrel.Expr("COALESCE(?, is_active)", isActive)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, name, teacher_id, is_active").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build update class query: %w", err)
	}

	class := &models.Class{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&class.ID, &class.Name, &class.TeacherID, &class.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "classes_name_key") {
			return nil, apperrors.ErrClassNameExists
		}
		return nil, fmt.Errorf("error updating class: %w", err)
	}

	return class, nil
}

// DeleteClass removes a class; enrollments cascade at the storage level.
func (r *ClassRepository) DeleteClass(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("classes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete class query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", id).Msg("Error executing delete class query")
		return fmt.Errorf("error deleting class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}
