package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blinko-space/blinko-server/internal/models"
	"gorm.io/gorm"
)

// pluginKeyPrefix namespaces plugin-scoped rows inside the configs table.
const pluginKeyPrefix = "plugin_config_"

// PluginConfigKey builds the composite row key for a plugin setting.
func PluginConfigKey(pluginName, key string) string {
	return pluginKeyPrefix + pluginName + "_" + key
}

func pluginConfigPrefix(pluginName string) string {
	return pluginKeyPrefix + pluginName + "_"
}

// SetPluginValue stores a plugin-scoped setting for the caller. At most one
// row exists per composite key per user; an existing row is updated in place.
func (s *Service) SetPluginValue(ctx context.Context, caller Caller, pluginName, key string, value any) (*models.ConfigEntry, error) {
	composite := PluginConfigKey(pluginName, key)
	encoded, errEncode := EncodeValue(value)
	if errEncode != nil {
		return nil, fmt.Errorf("settings: encode %s: %w", composite, errEncode)
	}

	var existing models.ConfigEntry
	errFind := s.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", caller.ID, composite).
		Order("id ASC").
		First(&existing).Error
	if errFind != nil {
		if !errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("settings: find %s: %w", composite, errFind)
		}
		owner := caller.ID
		entry := models.ConfigEntry{Key: composite, UserID: &owner, Config: encoded}
		if errCreate := s.db.WithContext(ctx).Create(&entry).Error; errCreate != nil {
			return nil, fmt.Errorf("settings: create %s: %w", composite, errCreate)
		}
		return &entry, nil
	}

	if errUpdate := s.db.WithContext(ctx).Model(&models.ConfigEntry{}).
		Where("id = ?", existing.ID).
		Update("config", encoded).Error; errUpdate != nil {
		return nil, fmt.Errorf("settings: update %s: %w", composite, errUpdate)
	}
	existing.Config = encoded
	return &existing, nil
}

// PluginValues returns all of the caller's settings for a plugin as a flat
// mapping with the composite prefix stripped.
func (s *Service) PluginValues(ctx context.Context, caller Caller, pluginName string) (map[string]any, error) {
	prefix := pluginConfigPrefix(pluginName)

	var rows []models.ConfigEntry
	if errFind := s.db.WithContext(ctx).
		Where("user_id = ? AND key LIKE ?", caller.ID, prefix+"%").
		Order("id ASC").
		Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("settings: load plugin config %s: %w", pluginName, errFind)
	}

	out := make(map[string]any, len(rows))
	for _, row := range rows {
		// LIKE treats "_" as a wildcard, so re-check the literal prefix.
		if !strings.HasPrefix(row.Key, prefix) {
			continue
		}
		value, errDecode := DecodeValue(row.Config)
		if errDecode != nil {
			continue
		}
		out[strings.TrimPrefix(row.Key, prefix)] = value
	}
	return out, nil
}
