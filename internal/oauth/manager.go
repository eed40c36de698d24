// Package oauth maintains OAuth2 strategy objects built from the
// oauth2Providers config value. The manager is rebuilt best-effort whenever
// that key changes; a failed rebuild keeps the previous strategies.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/blinko-space/blinko-server/internal/settings"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// ProviderConfig is one entry of the oauth2Providers config value.
type ProviderConfig struct {
	Name         string   `json:"name"`
	ClientID     string   `json:"clientId"`
	ClientSecret string   `json:"clientSecret"`
	AuthURL      string   `json:"authorizationUrl"`
	TokenURL     string   `json:"tokenUrl"`
	RedirectURL  string   `json:"redirectUrl"`
	Scopes       []string `json:"scopes"`
}

// configReader is the slice of the settings service the manager depends on.
type configReader interface {
	ResolveAsSystem(ctx context.Context) (map[string]any, error)
}

// Manager holds the currently initialized OAuth2 strategies.
type Manager struct {
	reader configReader

	mu         sync.RWMutex
	strategies map[string]*oauth2.Config
}

// NewManager constructs a Manager reading provider config through the
// settings service. Call Reinitialize once during startup to seed it.
func NewManager(reader configReader) *Manager {
	return &Manager{reader: reader, strategies: map[string]*oauth2.Config{}}
}

// Reinitialize rebuilds all strategies from the current config value.
func (m *Manager) Reinitialize(ctx context.Context) error {
	cfg, errResolve := m.reader.ResolveAsSystem(ctx)
	if errResolve != nil {
		return fmt.Errorf("oauth: resolve config: %w", errResolve)
	}

	providers, errParse := parseProviders(cfg[settings.KeyOAuth2Providers])
	if errParse != nil {
		return errParse
	}

	next := make(map[string]*oauth2.Config, len(providers))
	for _, p := range providers {
		if p.Name == "" || p.ClientID == "" {
			log.Warnf("oauth: skipping provider with missing name or client id")
			continue
		}
		next[p.Name] = &oauth2.Config{
			ClientID:     p.ClientID,
			ClientSecret: p.ClientSecret,
			RedirectURL:  p.RedirectURL,
			Scopes:       p.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  p.AuthURL,
				TokenURL: p.TokenURL,
			},
		}
	}

	m.mu.Lock()
	m.strategies = next
	m.mu.Unlock()

	log.WithField("providers", len(next)).Info("oauth strategies initialized")
	return nil
}

// OnConfigChanged rebuilds strategies when the provider list changes.
// Failures are logged and swallowed so the config update itself succeeds.
func (m *Manager) OnConfigChanged(ctx context.Context, key string) error {
	if key != settings.KeyOAuth2Providers {
		return nil
	}
	if errReinit := m.Reinitialize(ctx); errReinit != nil {
		log.Warnf("oauth: reinitialize after config update failed: %v", errReinit)
	}
	return nil
}

// Strategy returns the strategy registered under the provider name.
func (m *Manager) Strategy(name string) (*oauth2.Config, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	strategy, ok := m.strategies[name]
	return strategy, ok
}

// Providers lists the names of the initialized strategies.
func (m *Manager) Providers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.strategies))
	for name := range m.strategies {
		names = append(names, name)
	}
	return names
}

// parseProviders decodes the raw config value into provider entries.
// A missing value yields an empty list.
func parseProviders(value any) ([]ProviderConfig, error) {
	if value == nil {
		return nil, nil
	}
	raw, errMarshal := json.Marshal(value)
	if errMarshal != nil {
		return nil, fmt.Errorf("oauth: marshal provider config: %w", errMarshal)
	}
	var providers []ProviderConfig
	if errUnmarshal := json.Unmarshal(raw, &providers); errUnmarshal != nil {
		return nil, fmt.Errorf("oauth: parse provider config: %w", errUnmarshal)
	}
	return providers, nil
}
