package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	appauth "github.com/emirkaya/schoolhub/internal/app/auth"
	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/app/repositories"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
	"github.com/emirkaya/schoolhub/internal/pkg/auth"
	"github.com/emirkaya/schoolhub/internal/pkg/metrics"
)

// sessionStore is the session persistence surface the service needs.
type sessionStore interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionWithUser(ctx context.Context, sessionID string) (*repositories.SessionWithUser, error)
	UpdateExpiry(ctx context.Context, sessionID string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteAllUserSessions(ctx context.Context, userID int64) error
}

// SessionService issues, validates and revokes opaque session tokens.
// Only the SHA-256 derived session id is ever persisted; the raw token
// exists client-side alone.
type SessionService struct {
	sessions      sessionStore
	ttl           time.Duration
	renewalWindow time.Duration
	logger        zerolog.Logger
	now           func() time.Time
}

// NewSessionService creates a new SessionService
func NewSessionService(sessions sessionStore, ttl, renewalWindow time.Duration, logger zerolog.Logger) *SessionService {
	return &SessionService{
		sessions:      sessions,
		ttl:           ttl,
		renewalWindow: renewalWindow,
		logger:        logger,
		now:           time.Now,
	}
}

// Create mints a fresh session for a user and returns the raw token.
func (s *SessionService) Create(ctx context.Context, userID int64) (string, *models.Session, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := s.now()
	session := &models.Session{
		ID:        auth.SessionIDFromToken(token),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return "", nil, err
	}

	return token, session, nil
}

// Validate resolves a raw token to the acting user. Expired sessions are
// deleted on sight, and sessions inside the trailing renewal window get
// their expiry pushed out by a full TTL.
func (s *SessionService) Validate(ctx context.Context, token string) (*appauth.Actor, error) {
	if token == "" {
		metrics.ObserveSessionValidation("invalid")
		return nil, apperrors.ErrTokenInvalid
	}

	sessionID := auth.SessionIDFromToken(token)

	record, err := s.sessions.GetSessionWithUser(ctx, sessionID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTokenNotFound) {
			metrics.ObserveSessionValidation("not_found")
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}

	now := s.now()
	// A session reaching its expiry instant is already dead.
	if now.Compare(record.Session.ExpiresAt) >= 0 {
		if delErr := s.sessions.DeleteSession(ctx, sessionID); delErr != nil {
			s.logger.Warn().Err(delErr).Msg("Failed to delete expired session")
		}
		metrics.ObserveSessionValidation("expired")
		return nil, apperrors.ErrTokenExpired
	}

	if !record.User.IsActive {
		metrics.ObserveSessionValidation("disabled")
		return nil, apperrors.ErrAccountDisabled
	}

	if record.Session.ExpiresAt.Sub(now) <= s.renewalWindow {
		if err := s.sessions.UpdateExpiry(ctx, sessionID, now.Add(s.ttl)); err != nil {
			// The session is still valid; renewal retries on the next request.
			s.logger.Warn().Err(err).Msg("Failed to renew session expiry")
		}
	}

	metrics.ObserveSessionValidation("valid")
	return &appauth.Actor{
		UserID:    record.User.ID,
		Role:      record.User.Role,
		StudentID: record.StudentID,
		TeacherID: record.TeacherID,
	}, nil
}

// Revoke invalidates a single session. Unknown tokens are a no-op.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, auth.SessionIDFromToken(token))
}

// RevokeAll invalidates every session belonging to a user.
func (s *SessionService) RevokeAll(ctx context.Context, userID int64) error {
	return s.sessions.DeleteAllUserSessions(ctx, userID)
}
