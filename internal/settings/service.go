package settings

import (
	"context"

	"github.com/blinko-space/blinko-server/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Caller identifies the principal a config operation acts for.
// A zero ID means anonymous.
type Caller struct {
	ID   uint64
	Role string
}

// IsAnonymous reports whether the caller is unauthenticated.
func (c Caller) IsAnonymous() bool {
	return c.ID == 0
}

// IsSuperAdmin reports whether the caller holds the superadmin role.
func (c Caller) IsSuperAdmin() bool {
	return c.Role == models.RoleSuperAdmin
}

// ChangeListener receives a notification after a config write commits.
// Listener failures are logged and never surfaced to the writer's caller.
type ChangeListener interface {
	OnConfigChanged(ctx context.Context, key string) error
}

// Service resolves and updates configuration over the configs table.
// It holds no state between calls beyond the registered listeners.
type Service struct {
	db        *gorm.DB
	listeners []ChangeListener
}

// NewService constructs a Service over the given connection.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Subscribe registers a change listener. Not safe to call once the service
// is handling requests; register listeners during wiring.
func (s *Service) Subscribe(listener ChangeListener) {
	if listener == nil {
		return
	}
	s.listeners = append(s.listeners, listener)
}

// notifyChanged runs listeners synchronously after a successful write.
func (s *Service) notifyChanged(ctx context.Context, key string) {
	for _, listener := range s.listeners {
		if errNotify := listener.OnConfigChanged(ctx, key); errNotify != nil {
			log.WithField("key", key).Warnf("config change listener failed: %v", errNotify)
		}
	}
}
