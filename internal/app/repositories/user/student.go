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

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateStudentTx inserts a student profile inside the account-creation
// transaction.
func (r *StudentRepository) CreateStudentTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO students (user_id)
		VALUES ($1)
		RETURNING id`,
		userID).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating student profile: %w", err)
	}

	return id, nil
}

// GetStudentByID retrieves a student profile with its account.
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.user_id", "s.enrollment_date",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role", "u.is_active", "u.created_at", "u.updated_at").
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{User: &models.User{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID, &student.UserID, &student.EnrollmentDate,
		&student.User.ID, &student.User.Email, &student.User.FirstName, &student.User.LastName,
		&student.User.Role, &student.User.IsActive, &student.User.CreatedAt, &student.User.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetStudentByUserID retrieves the student profile owned by an account.
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, enrollment_date
		FROM students
		WHERE user_id = $1`,
		userID).Scan(&student.ID, &student.UserID, &student.EnrollmentDate)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// ListStudents retrieves all student profiles joined to their accounts.
func (r *StudentRepository) ListStudents(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.user_id", "s.enrollment_date",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role", "u.is_active", "u.created_at", "u.updated_at").
		From("students s").
		Join("users u ON u.id = s.user_id").
		OrderBy("s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{User: &models.User{}}
		if err := rows.Scan(
			&student.ID, &student.UserID, &student.EnrollmentDate,
			&student.User.ID, &student.User.Email, &student.User.FirstName, &student.User.LastName,
			&student.User.Role, &student.User.IsActive, &student.User.CreatedAt, &student.User.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

// StudentExists checks whether a student profile row exists.
func (r *StudentRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`,
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student: %w", err)
	}

	return exists, nil
}
