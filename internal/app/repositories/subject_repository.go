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
)

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateSubject inserts a new subject.
func (r *SubjectRepository) CreateSubject(ctx context.Context, name string) (*models.Subject, error) {
	sql, args, err := r.sb.Insert("subjects").
		Columns("name").
		Values(name).
		Suffix("RETURNING id, name").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build create subject query: %w", err)
	}

	subject := &models.Subject{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID, &subject.Name)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_name_key") {
			return nil, apperrors.ErrSubjectNameExists
		}
		return nil, fmt.Errorf("error creating subject: %w", err)
	}

	return subject, nil
}

// GetSubjectByID retrieves a subject by id.
func (r *SubjectRepository) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	subject := &models.Subject{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID, &subject.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return subject, nil
}

// ListSubjects retrieves all subjects ordered by name.
func (r *SubjectRepository) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("subjects").
		OrderBy("name").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		if err := rows.Scan(&subject.ID, &subject.Name); err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, subject)
	}

	return subjects, rows.Err()
}

// UpdateSubject renames a subject.
func (r *SubjectRepository) UpdateSubject(ctx context.Context, id int64, name string) (*models.Subject, error) {
	sql, args, err := r.sb.Update("subjects").
		Set("name", name).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, name").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build update subject query: %w", err)
	}

	subject := &models.Subject{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID, &subject.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "subjects_name_key") {
			return nil, apperrors.ErrSubjectNameExists
		}
		return nil, fmt.Errorf("error updating subject: %w", err)
	}

	return subject, nil
}

// DeleteSubject removes a subject.
func (r *SubjectRepository) DeleteSubject(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete subject query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
