package repository

import (
	"encoding/json"

	"github.com/atinyakov/taskmaster/internal/kvstore"
	"github.com/atinyakov/taskmaster/internal/models"
	"go.uber.org/zap"
)

// SessionRepository persists the active session: a denormalized copy of the
// signed-in profile under its own storage key. At most one session exists
// process-wide.
type SessionRepository struct {
	store kvstore.Store
	log   *zap.Logger
}

// NewSessionRepository creates a SessionRepository backed by the given store.
func NewSessionRepository(store kvstore.Store, log *zap.Logger) *SessionRepository {
	return &SessionRepository{store: store, log: log}
}

// Restore reads the persisted session. Returns nil when no session is stored
// or the stored value cannot be parsed (logged, treated as signed out).
func (r *SessionRepository) Restore() *models.Profile {
	raw, ok := r.store.Get(sessionKey)
	if !ok {
		return nil
	}
	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		r.log.Warn("corrupt session, treating as signed out", zap.Error(err))
		return nil
	}
	return &p
}

// Write persists profile as the active session. The stored value is a copy
// of the profile at this moment, not a live reference: profile updates must
// be written again to stay consistent.
func (r *SessionRepository) Write(profile models.Profile) error {
	buf, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return r.store.Set(sessionKey, string(buf))
}

// Clear removes the session key.
func (r *SessionRepository) Clear() error {
	return r.store.Remove(sessionKey)
}
