package repository

import (
	"github.com/atinyakov/taskmaster/internal/kvstore"
	"github.com/atinyakov/taskmaster/internal/models"
)

// ThemeRepository persists the UI color scheme under the "theme" key.
type ThemeRepository struct {
	store kvstore.Store
}

// NewThemeRepository creates a ThemeRepository backed by the given store.
func NewThemeRepository(store kvstore.Store) *ThemeRepository {
	return &ThemeRepository{store: store}
}

// Load returns the stored theme, defaulting to light when the key is absent
// or holds an unknown value.
func (r *ThemeRepository) Load() models.Theme {
	raw, ok := r.store.Get(themeKey)
	if !ok {
		return models.ThemeLight
	}
	t := models.Theme(raw)
	if !t.Valid() {
		return models.ThemeLight
	}
	return t
}

// Save stores the theme.
func (r *ThemeRepository) Save(t models.Theme) error {
	return r.store.Set(themeKey, string(t))
}
