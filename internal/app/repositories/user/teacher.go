package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
)

// TeacherRepository handles teacher profile database operations
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTeacherTx inserts a teacher profile inside the account-creation
// transaction.
func (r *TeacherRepository) CreateTeacherTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO teachers (user_id)
		VALUES ($1)
		RETURNING id`,
		userID).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating teacher profile: %w", err)
	}

	return id, nil
}

// GetTeacherByID retrieves a teacher profile with its account.
func (r *TeacherRepository) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	sql, args, err := r.sb.Select(
		"t.id", "t.user_id", "t.hire_date",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role", "u.is_active", "u.created_at", "u.updated_at").
		From("teachers t").
		Join("users u ON u.id = t.user_id").
		Where(squirrel.Eq{"t.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher := &models.Teacher{User: &models.User{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&teacher.ID, &teacher.UserID, &teacher.HireDate,
		&teacher.User.ID, &teacher.User.Email, &teacher.User.FirstName, &teacher.User.LastName,
		&teacher.User.Role, &teacher.User.IsActive, &teacher.User.CreatedAt, &teacher.User.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// GetTeacherByUserID retrieves the teacher profile owned by an account.
func (r *TeacherRepository) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	teacher := &models.Teacher{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, hire_date
		FROM teachers
		WHERE user_id = $1`,
		userID).Scan(&teacher.ID, &teacher.UserID, &teacher.HireDate)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// ListTeachers retrieves all teacher profiles joined to their accounts.
func (r *TeacherRepository) ListTeachers(ctx context.Context) ([]*models.Teacher, error) {
	sql, args, err := r.sb.Select(
		"t.id", "t.user_id", "t.hire_date",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role", "u.is_active", "u.created_at", "u.updated_at").
		From("teachers t").
		Join("users u ON u.id = t.user_id").
		OrderBy("t.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher := &models.Teacher{User: &models.User{}}
		if err := rows.Scan(
			&teacher.ID, &teacher.UserID, &teacher.HireDate,
			&teacher.User.ID, &teacher.User.Email, &teacher.User.FirstName, &teacher.User.LastName,
			&teacher.User.Role, &teacher.User.IsActive, &teacher.User.CreatedAt, &teacher.User.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	return teachers, rows.Err()
}

// CountOwnedClasses counts classes still owned by a teacher. Used to block
// account deletion while ownership is unresolved.
func (r *TeacherRepository) CountOwnedClasses(ctx context.Context, teacherID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM classes WHERE teacher_id = $1`,
		teacherID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting owned classes: %w", err)
	}

	return count, nil
}
