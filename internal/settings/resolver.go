package settings

import (
	"context"
	"fmt"

	"github.com/blinko-space/blinko-server/internal/models"
	log "github.com/sirupsen/logrus"
)

// Resolve computes the effective configuration visible to the caller.
//
// Anonymous callers see only the public bootstrap keys. Authenticated
// non-admin callers see their own user-preference rows plus un-owned global
// rows; a global-key row that incorrectly carries a user id is dropped for
// them. Superadmins see every global row plus their own preference rows.
// Other users' preference rows are never included for anyone.
func (s *Service) Resolve(ctx context.Context, caller Caller) (map[string]any, error) {
	return s.resolve(ctx, caller, false)
}

// ResolveAsSystem computes the full admin-view configuration for in-process
// subsystems that act on their own behalf rather than for a request caller.
func (s *Service) ResolveAsSystem(ctx context.Context) (map[string]any, error) {
	return s.resolve(ctx, Caller{}, true)
}

func (s *Service) resolve(ctx context.Context, caller Caller, useAdmin bool) (map[string]any, error) {
	var rows []models.ConfigEntry
	if errFind := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("settings: load config rows: %w", errFind)
	}

	admin := useAdmin || caller.IsSuperAdmin()
	acc := make(map[string]any, len(rows))
	for _, row := range rows {
		value, errDecode := DecodeValue(row.Config)
		if errDecode != nil {
			log.WithField("key", row.Key).Warnf("skipping malformed config row %d: %v", row.ID, errDecode)
			continue
		}

		// Bootstrap keys are served to anonymous callers from any row;
		// the lowest-id row wins when duplicates exist.
		if IsPublicBootstrapKey(row.Key) && caller.IsAnonymous() {
			if _, ok := acc[row.Key]; !ok {
				acc[row.Key] = value
			}
			continue
		}
		if caller.IsAnonymous() && !useAdmin {
			continue
		}
		if !admin && row.UserID != nil && *row.UserID != caller.ID {
			continue
		}

		if IsUserPreferenceKey(row.Key) {
			if row.UserID != nil && *row.UserID == caller.ID {
				acc[row.Key] = value
			}
			continue
		}
		if admin || row.UserID == nil {
			acc[row.Key] = value
		}
	}
	return acc, nil
}
