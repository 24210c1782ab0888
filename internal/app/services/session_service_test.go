package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/app/repositories"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
	"github.com/emirkaya/schoolhub/internal/pkg/auth"
)

type fakeSessionStore struct {
	records      map[string]*repositories.SessionWithUser
	expiries     map[string]time.Time
	deleted      []string
	deletedUsers []int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		records:  make(map[string]*repositories.SessionWithUser),
		expiries: make(map[string]time.Time),
	}
}

func (f *fakeSessionStore) CreateSession(_ context.Context, session *models.Session) error {
	f.records[session.ID] = &repositories.SessionWithUser{
		Session: *session,
		User:    models.User{ID: session.UserID, IsActive: true, Role: models.RoleAdmin},
	}
	return nil
}

func (f *fakeSessionStore) GetSessionWithUser(_ context.Context, sessionID string) (*repositories.SessionWithUser, error) {
	record, ok := f.records[sessionID]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return record, nil
}

func (f *fakeSessionStore) UpdateExpiry(_ context.Context, sessionID string, expiresAt time.Time) error {
	f.expiries[sessionID] = expiresAt
	return nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, sessionID string) error {
	f.deleted = append(f.deleted, sessionID)
	delete(f.records, sessionID)
	return nil
}

func (f *fakeSessionStore) DeleteAllUserSessions(_ context.Context, userID int64) error {
	f.deletedUsers = append(f.deletedUsers, userID)
	return nil
}

// seedSession plants a session for a student user and returns the raw token.
func (f *fakeSessionStore) seedSession(t *testing.T, expiresAt time.Time, active bool) string {
	t.Helper()
	token, err := auth.GenerateSessionToken()
	require.NoError(t, err)

	studentID := int64(7)
	id := auth.SessionIDFromToken(token)
	f.records[id] = &repositories.SessionWithUser{
		Session:   models.Session{ID: id, UserID: 42, ExpiresAt: expiresAt},
		User:      models.User{ID: 42, Role: models.RoleStudent, IsActive: active},
		StudentID: &studentID,
	}
	return token
}

func newTestSessionService(store *fakeSessionStore, now time.Time) *SessionService {
	svc := NewSessionService(store, 720*time.Hour, 360*time.Hour, zerolog.Nop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestSessionServiceCreate(t *testing.T) {
	store := newFakeSessionStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestSessionService(store, now)

	token, session, err := svc.Create(context.Background(), 42)
	require.NoError(t, err)

	// The stored id is the derived hash, never the raw token.
	assert.NotEqual(t, token, session.ID)
	assert.Equal(t, auth.SessionIDFromToken(token), session.ID)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, now.Add(720*time.Hour), session.ExpiresAt)

	_, ok := store.records[session.ID]
	assert.True(t, ok)
}

func TestSessionServiceValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid token resolves the actor", func(t *testing.T) {
		store := newFakeSessionStore()
		svc := newTestSessionService(store, now)
		token := store.seedSession(t, now.Add(600*time.Hour), true)

		actor, err := svc.Validate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), actor.UserID)
		assert.Equal(t, models.RoleStudent, actor.Role)
		require.NotNil(t, actor.StudentID)
		assert.Equal(t, int64(7), *actor.StudentID)
		assert.Nil(t, actor.TeacherID)

		// Well outside the renewal window: expiry untouched.
		assert.Empty(t, store.expiries)
	})

	t.Run("empty token is invalid", func(t *testing.T) {
		svc := newTestSessionService(newFakeSessionStore(), now)

		_, err := svc.Validate(context.Background(), "")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		svc := newTestSessionService(newFakeSessionStore(), now)

		_, err := svc.Validate(context.Background(), "neverissued")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("expired session is rejected and deleted", func(t *testing.T) {
		store := newFakeSessionStore()
		svc := newTestSessionService(store, now)
		token := store.seedSession(t, now.Add(-time.Minute), true)

		_, err := svc.Validate(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
		assert.Contains(t, store.deleted, auth.SessionIDFromToken(token))
	})

	t.Run("session at its exact expiry instant is rejected", func(t *testing.T) {
		store := newFakeSessionStore()
		svc := newTestSessionService(store, now)
		token := store.seedSession(t, now, true)

		_, err := svc.Validate(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
		assert.Contains(t, store.deleted, auth.SessionIDFromToken(token))
	})

	t.Run("disabled account is rejected", func(t *testing.T) {
		store := newFakeSessionStore()
		svc := newTestSessionService(store, now)
		token := store.seedSession(t, now.Add(600*time.Hour), false)

		_, err := svc.Validate(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})

	t.Run("expiry is extended inside the renewal window", func(t *testing.T) {
		store := newFakeSessionStore()
		svc := newTestSessionService(store, now)
		token := store.seedSession(t, now.Add(100*time.Hour), true)

		_, err := svc.Validate(context.Background(), token)
		require.NoError(t, err)

		renewed, ok := store.expiries[auth.SessionIDFromToken(token)]
		require.True(t, ok)
		assert.Equal(t, now.Add(720*time.Hour), renewed)
	})
}

func TestSessionServiceRevoke(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeSessionStore()
	svc := newTestSessionService(store, now)

	token := store.seedSession(t, now.Add(600*time.Hour), true)
	require.NoError(t, svc.Revoke(context.Background(), token))
	assert.Contains(t, store.deleted, auth.SessionIDFromToken(token))

	// Revoking nothing is a no-op.
	require.NoError(t, svc.Revoke(context.Background(), ""))

	require.NoError(t, svc.RevokeAll(context.Background(), 42))
	assert.Equal(t, []int64{42}, store.deletedUsers)
}
