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
	"github.com/emirkaya/schoolhub/internal/pkg/logger"
)

// SessionRepository handles session database operations. Only derived
// session identifiers are stored here, never plaintext tokens.
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateSession persists a new session row.
func (r *SessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Insert("sessions").
		Columns("id", "user_id", "expires_at", "created_at").
		Values(session.ID, session.UserID, session.ExpiresAt, session.CreatedAt).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create session SQL")
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", session.UserID).Msg("Error executing create session query")
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

// SessionWithUser is a session joined to its owning account and the
// account's optional role-profile ids.
type SessionWithUser struct {
	Session   models.Session
	User      models.User
	StudentID *int64
	TeacherID *int64
}

// GetSessionWithUser retrieves a session by its derived identifier joined
// to the owning account and its role profile.
func (r *SessionRepository) GetSessionWithUser(ctx context.Context, sessionID string) (*SessionWithUser, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.user_id", "s.expires_at", "s.created_at",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role", "u.is_active", "u.created_at", "u.updated_at",
		"st.id", "t.id").
		From("sessions s").
		Join("users u ON u.id = s.user_id").
		LeftJoin("students st ON st.user_id = u.id").
		LeftJoin("teachers t ON t.user_id = u.id").
		Where(squirrel.Eq{"s.id": sessionID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get session SQL")
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	result := &SessionWithUser{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&result.Session.ID, &result.Session.UserID, &result.Session.ExpiresAt, &result.Session.CreatedAt,
		&result.User.ID, &result.User.Email, &result.User.FirstName, &result.User.LastName,
		&result.User.Role, &result.User.IsActive, &result.User.CreatedAt, &result.User.UpdatedAt,
		&result.StudentID, &result.TeacherID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning session row")
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	return result, nil
}

// UpdateExpiry extends a session's expiry timestamp.
func (r *SessionRepository) UpdateExpiry(ctx context.Context, sessionID string, expiresAt time.Time) error {
	sql, args, err := r.sb.Update("sessions").
		Set("expires_at", expiresAt).
		Where(squirrel.Eq{"id": sessionID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update session expiry SQL")
		return fmt.Errorf("failed to build update session expiry query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update session expiry query")
		return fmt.Errorf("error updating session expiry: %w", err)
	}

	return nil
}

// DeleteSession removes a session by identifier. Absence is not an error.
func (r *SessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	sql, args, err := r.sb.Delete("sessions").
		Where(squirrel.Eq{"id": sessionID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete session SQL")
		return fmt.Errorf("failed to build delete session query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete session query")
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

// DeleteAllUserSessions removes every session owned by an account.
// Idempotent: zero affected rows is fine.
func (r *SessionRepository) DeleteAllUserSessions(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("sessions").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error building delete user sessions SQL")
		return fmt.Errorf("failed to build delete user sessions query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing delete user sessions query")
		return fmt.Errorf("error deleting user sessions: %w", err)
	}

	return nil
}
