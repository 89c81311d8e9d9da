// Package repository provides persistence implementations over the key-value
// store for profiles, tasks, the active session and UI preferences.
package repository

import (
	"encoding/json"

	"github.com/atinyakov/taskmaster/internal/kvstore"
	"github.com/atinyakov/taskmaster/internal/models"
	"go.uber.org/zap"
)

// Storage keys. The whole application state lives under these keys plus one
// task-list key per account (see taskKey).
const (
	profilesKey = "taskmaster_profiles"
	sessionKey  = "taskmaster_session"
	themeKey    = "theme"
)

// Directory persists the account directory: one serialized mapping of
// email → Profile under a single storage key. Every mutation rewrites the
// whole mapping.
type Directory struct {
	store kvstore.Store
	log   *zap.Logger
}

// NewDirectory creates a Directory backed by the given store.
func NewDirectory(store kvstore.Store, log *zap.Logger) *Directory {
	return &Directory{store: store, log: log}
}

// Load reads the directory mapping. An absent or corrupt value yields an
// empty mapping; corruption is logged, never surfaced to the caller.
func (d *Directory) Load() map[string]models.Profile {
	raw, ok := d.store.Get(profilesKey)
	if !ok {
		return map[string]models.Profile{}
	}
	profiles := map[string]models.Profile{}
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		d.log.Warn("corrupt profile directory, resetting to empty", zap.Error(err))
		return map[string]models.Profile{}
	}
	return profiles
}

// Get returns the profile stored under email, or nil if absent.
func (d *Directory) Get(email string) *models.Profile {
	profiles := d.Load()
	p, ok := profiles[email]
	if !ok {
		return nil
	}
	return &p
}

// Upsert inserts or overwrites the profile at its email key and writes the
// whole mapping back.
func (d *Directory) Upsert(profile models.Profile) error {
	profiles := d.Load()
	profiles[profile.Email] = profile
	return d.write(profiles)
}

// Remove deletes the entry for email and writes the whole mapping back.
// Removing an absent entry is a no-op.
func (d *Directory) Remove(email string) error {
	profiles := d.Load()
	if _, ok := profiles[email]; !ok {
		return nil
	}
	delete(profiles, email)
	return d.write(profiles)
}

func (d *Directory) write(profiles map[string]models.Profile) error {
	buf, err := json.Marshal(profiles)
	if err != nil {
		return err
	}
	return d.store.Set(profilesKey, string(buf))
}
