package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated user session. It exists from sign-in until
// sign-out or expiry.
type Session struct {
	ID        string    `json:"session_id"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore records live sessions.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionManager owns the session lifecycle: open at sign-in, resolve per
// request, close at sign-out.
type SessionManager struct {
	tokens *JWTManager
	store  SessionStore
}

// NewSessionManager creates a SessionManager.
func NewSessionManager(tokens *JWTManager, store SessionStore) *SessionManager {
	return &SessionManager{tokens: tokens, store: store}
}

// Open issues a token and records the session.
func (m *SessionManager) Open(ctx context.Context, userID uuid.UUID, email string) (Session, error) {
	_, session, err := m.tokens.Issue(userID, email)
	if err != nil {
		return Session{}, err
	}
	if err := m.store.Save(ctx, session); err != nil {
		return Session{}, fmt.Errorf("failed to record session: %w", err)
	}
	return session, nil
}

// Resolve verifies token and checks the session has not been closed.
func (m *SessionManager) Resolve(ctx context.Context, token string) (Session, error) {
	session, err := m.tokens.Verify(token)
	if err != nil {
		return Session{}, err
	}
	ok, err := m.store.Exists(ctx, session.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to look up session: %w", err)
	}
	if !ok {
		return Session{}, ErrSessionRevoked
	}
	return session, nil
}

// Close ends the session.
func (m *SessionManager) Close(ctx context.Context, session Session) error {
	if err := m.store.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	return nil
}
