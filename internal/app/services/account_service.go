package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/app/repositories"
	"github.com/emirkaya/schoolhub/internal/db"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
	"github.com/emirkaya/schoolhub/internal/pkg/auth"
	"github.com/emirkaya/schoolhub/internal/pkg/validation"
)

// AccountService handles account lifecycle and authentication operations
type AccountService struct {
	pool     *pgxpool.Pool
	users    *repositories.UserRepository
	sessions *SessionService
	logger   zerolog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	pool *pgxpool.Pool,
	users *repositories.UserRepository,
	sessions *SessionService,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		pool:     pool,
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a user account together with its role profile in a single
// transaction. A student or teacher row never exists without its user, and a
// student or teacher account never exists without its profile.
func (s *AccountService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.ValidEmail(email) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail, "invalid email format")
	}
	if !validation.ValidPassword(req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidPassword, "password must be at least 8 characters")
	}
	if !validation.ValidName(req.FirstName) || !validation.ValidName(req.LastName) {
		return nil, apperrors.NewValidationError("first and last name are required")
	}
	if !req.Role.Valid() {
		return nil, apperrors.NewValidationError("unknown role")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      req.Role,
		IsActive:  true,
	}

	var profileID int64
	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := s.users.CreateUserTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = userID

		switch req.Role {
		case models.RoleStudent:
			profileID, err = s.users.CreateStudentTx(ctx, tx, userID)
		case models.RoleTeacher:
			profileID, err = s.users.CreateTeacherTx(ctx, tx, userID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("Account created")

	resp := dto.NewUserResponse(user)
	switch req.Role {
	case models.RoleStudent:
		resp.StudentID = &profileID
	case models.RoleTeacher:
		resp.TeacherID = &profileID
	}
	return &resp, nil
}

// Login verifies credentials and opens a session. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresAt:   session.ExpiresAt,
		},
		User: dto.NewUserResponse(user),
	}
	s.attachProfileIDs(ctx, &resp.User)
	return resp, nil
}

// GetUser retrieves a user by id.
func (s *AccountService) GetUser(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	s.attachProfileIDs(ctx, &resp)
	return &resp, nil
}

// ListUsers retrieves all user accounts.
func (s *AccountService) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, user := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(user))
	}
	return resp, nil
}

// UpdateUser partially updates a user's profile fields. Role never changes.
// Deactivating an account also revokes its open sessions.
func (s *AccountService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if req.FirstName != nil && !validation.ValidName(*req.FirstName) {
		return nil, apperrors.NewValidationError("first name cannot be empty")
	}
	if req.LastName != nil && !validation.ValidName(*req.LastName) {
		return nil, apperrors.NewValidationError("last name cannot be empty")
	}

	var hashed *string
	if req.Password != nil {
		if !validation.ValidPassword(*req.Password) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidPassword, "password must be at least 8 characters")
		}
		h, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		hashed = &h
	}

	if err := s.users.UpdateProfile(ctx, id, req.FirstName, req.LastName, hashed, req.IsActive); err != nil {
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive {
		if err := s.sessions.RevokeAll(ctx, id); err != nil {
			s.logger.Warn().Err(err).Int64("userID", id).Msg("Failed to revoke sessions for deactivated user")
		}
	}

	return s.GetUser(ctx, id)
}

// DeleteUser removes a user account. Teachers still owning classes cannot be
// deleted; the classes must be reassigned or removed first.
func (s *AccountService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == models.RoleTeacher {
		teacher, err := s.users.GetTeacherByUserID(ctx, id)
		if err != nil && !apperrors.Is(err, apperrors.ErrTeacherNotFound) {
			return err
		}
		if teacher != nil {
			owned, err := s.users.CountOwnedClasses(ctx, teacher.ID)
			if err != nil {
				return err
			}
			if owned > 0 {
				return apperrors.ErrTeacherHasClasses
			}
		}
	}

	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", id).Msg("Account deleted")
	return nil
}

// ListStudents retrieves all student profiles.
func (s *AccountService) ListStudents(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.users.ListStudents(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		resp = append(resp, dto.NewStudentResponse(student))
	}
	return resp, nil
}

// GetStudent retrieves a student profile by id.
func (s *AccountService) GetStudent(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.users.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// ListTeachers retrieves all teacher profiles.
func (s *AccountService) ListTeachers(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.users.ListTeachers(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		resp = append(resp, dto.NewTeacherResponse(teacher))
	}
	return resp, nil
}

// GetTeacher retrieves a teacher profile by id.
func (s *AccountService) GetTeacher(ctx context.Context, id int64) (*dto.TeacherResponse, error) {
	teacher, err := s.users.GetTeacherByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTeacherResponse(teacher)
	return &resp, nil
}

// attachProfileIDs fills in the role-profile id for student and teacher
// accounts. Lookup failures leave the field empty rather than failing the
// whole request.
func (s *AccountService) attachProfileIDs(ctx context.Context, resp *dto.UserResponse) {
	switch resp.Role {
	case string(models.RoleStudent):
		if student, err := s.users.GetStudentByUserID(ctx, resp.ID); err == nil {
			resp.StudentID = &student.ID
		}
	case string(models.RoleTeacher):
		if teacher, err := s.users.GetTeacherByUserID(ctx, resp.ID); err == nil {
			resp.TeacherID = &teacher.ID
		}
	}
}
