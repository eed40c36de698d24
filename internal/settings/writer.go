package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/blinko-space/blinko-server/internal/models"
)

// ErrGlobalWriteForbidden is returned when a non-superadmin caller attempts
// to update a global config key.
var ErrGlobalWriteForbidden = errors.New("settings: only superadmin may update global config")

// Apply updates the value of a config key for the caller.
//
// User-preference keys write a row scoped to the caller; all other keys are
// global and require the superadmin role. When more than one row exists for
// the same (key, user scope), the lowest-id row is kept and the rest are
// deleted, repairing duplicates left behind by racing writers.
func (s *Service) Apply(ctx context.Context, caller Caller, key string, value any) (*models.ConfigEntry, error) {
	var owner *uint64
	if IsUserPreferenceKey(key) {
		id := caller.ID
		owner = &id
	} else if !caller.IsSuperAdmin() {
		return nil, ErrGlobalWriteForbidden
	}

	encoded, errEncode := EncodeValue(value)
	if errEncode != nil {
		return nil, fmt.Errorf("settings: encode %s: %w", key, errEncode)
	}

	query := s.db.WithContext(ctx).Where("key = ?", key)
	if owner != nil {
		query = query.Where("user_id = ?", *owner)
	}
	var rows []models.ConfigEntry
	if errFind := query.Order("id ASC").Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("settings: find rows for %s: %w", key, errFind)
	}

	var entry models.ConfigEntry
	if len(rows) == 0 {
		entry = models.ConfigEntry{Key: key, UserID: owner, Config: encoded}
		if errCreate := s.db.WithContext(ctx).Create(&entry).Error; errCreate != nil {
			return nil, fmt.Errorf("settings: create %s: %w", key, errCreate)
		}
	} else {
		entry = rows[0]
		if errUpdate := s.db.WithContext(ctx).Model(&models.ConfigEntry{}).
			Where("id = ?", entry.ID).
			Update("config", encoded).Error; errUpdate != nil {
			return nil, fmt.Errorf("settings: update %s: %w", key, errUpdate)
		}
		entry.Config = encoded

		if len(rows) > 1 {
			cleanup := s.db.WithContext(ctx).Where("key = ? AND id <> ?", key, entry.ID)
			if owner != nil {
				cleanup = cleanup.Where("user_id = ?", *owner)
			}
			if errDelete := cleanup.Delete(&models.ConfigEntry{}).Error; errDelete != nil {
				return nil, fmt.Errorf("settings: delete duplicates for %s: %w", key, errDelete)
			}
		}
	}

	s.notifyChanged(ctx, key)
	return &entry, nil
}
