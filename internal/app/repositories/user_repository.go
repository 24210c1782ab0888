package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/app/repositories/user"
)

// UserRepository combines the account, student and teacher repositories.
type UserRepository struct {
	common  *user.Repository
	student *user.StudentRepository
	teacher *user.TeacherRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		common:  user.NewRepository(db),
		student: user.NewStudentRepository(db),
		teacher: user.NewTeacherRepository(db),
	}
}

// CreateUserTx inserts a new account inside a transaction
func (r *UserRepository) CreateUserTx(ctx context.Context, tx pgx.Tx, u *models.User) (int64, error) {
	return r.common.CreateUserTx(ctx, tx, u)
}

// GetUserByEmail retrieves an account by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.GetUserByEmail(ctx, email)
}

// GetUserByID retrieves an account by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.GetUserByID(ctx, id)
}

// ListUsers retrieves all accounts
func (r *UserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	return r.common.ListUsers(ctx)
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.common.EmailExists(ctx, email)
}

// UpdateProfile updates an account's mutable fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, password *string, isActive *bool) error {
	return r.common.UpdateProfile(ctx, userID, firstName, lastName, password, isActive)
}

// DeleteUser removes an account; sessions and profiles cascade
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	return r.common.DeleteUser(ctx, id)
}

// CreateStudentTx inserts a student profile inside a transaction
func (r *UserRepository) CreateStudentTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	return r.student.CreateStudentTx(ctx, tx, userID)
}

// GetStudentByID retrieves a student profile with its account
func (r *UserRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.student.GetStudentByID(ctx, id)
}

// GetStudentByUserID retrieves the student profile owned by an account
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.student.GetStudentByUserID(ctx, userID)
}

// ListStudents retrieves all student profiles
func (r *UserRepository) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return r.student.ListStudents(ctx)
}

// StudentExists checks whether a student profile row exists
func (r *UserRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	return r.student.StudentExists(ctx, id)
}

// CreateTeacherTx inserts a teacher profile inside a transaction
func (r *UserRepository) CreateTeacherTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	return r.teacher.CreateTeacherTx(ctx, tx, userID)
}

// GetTeacherByID retrieves a teacher profile with its account
func (r *UserRepository) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return r.teacher.GetTeacherByID(ctx, id)
}

// GetTeacherByUserID retrieves the teacher profile owned by an account
func (r *UserRepository) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	return r.teacher.GetTeacherByUserID(ctx, userID)
}

// ListTeachers retrieves all teacher profiles
func (r *UserRepository) ListTeachers(ctx context.Context) ([]*models.Teacher, error) {
	return r.teacher.ListTeachers(ctx)
}

// CountOwnedClasses counts classes still owned by a teacher
func (r *UserRepository) CountOwnedClasses(ctx context.Context, teacherID int64) (int64, error) {
	return r.teacher.CountOwnedClasses(ctx, teacherID)
}
