package oauth

import (
	"context"
	"errors"
	"testing"
)

type staticReader struct {
	cfg map[string]any
	err error
}

func (r *staticReader) ResolveAsSystem(context.Context) (map[string]any, error) {
	return r.cfg, r.err
}

func TestReinitializeBuildsStrategies(t *testing.T) {
	reader := &staticReader{cfg: map[string]any{
		"oauth2Providers": []any{
			map[string]any{
				"name":             "github",
				"clientId":         "id-1",
				"clientSecret":     "secret-1",
				"authorizationUrl": "https://github.com/login/oauth/authorize",
				"tokenUrl":         "https://github.com/login/oauth/access_token",
				"scopes":           []any{"user:email"},
			},
			map[string]any{"name": "", "clientId": "orphan"},
		},
	}}

	m := NewManager(reader)
	if errReinit := m.Reinitialize(context.Background()); errReinit != nil {
		t.Fatalf("reinitialize: %v", errReinit)
	}

	strategy, ok := m.Strategy("github")
	if !ok {
		t.Fatalf("expected github strategy")
	}
	if strategy.ClientID != "id-1" {
		t.Fatalf("unexpected client id %s", strategy.ClientID)
	}
	if len(m.Providers()) != 1 {
		t.Fatalf("expected 1 provider, got %v", m.Providers())
	}
}

func TestReinitializeMissingConfigYieldsEmpty(t *testing.T) {
	m := NewManager(&staticReader{cfg: map[string]any{}})
	if errReinit := m.Reinitialize(context.Background()); errReinit != nil {
		t.Fatalf("reinitialize: %v", errReinit)
	}
	if len(m.Providers()) != 0 {
		t.Fatalf("expected no providers, got %v", m.Providers())
	}
}

func TestOnConfigChangedIgnoresOtherKeys(t *testing.T) {
	reader := &staticReader{err: errors.New("db down")}
	m := NewManager(reader)

	if errNotify := m.OnConfigChanged(context.Background(), "theme"); errNotify != nil {
		t.Fatalf("unrelated key must be a no-op, got %v", errNotify)
	}
}

func TestOnConfigChangedSwallowsFailures(t *testing.T) {
	reader := &staticReader{err: errors.New("db down")}
	m := NewManager(reader)

	if errNotify := m.OnConfigChanged(context.Background(), "oauth2Providers"); errNotify != nil {
		t.Fatalf("reinit failure must not propagate, got %v", errNotify)
	}
}

func TestOnConfigChangedKeepsPreviousStrategiesOnFailure(t *testing.T) {
	reader := &staticReader{cfg: map[string]any{
		"oauth2Providers": []any{map[string]any{"name": "github", "clientId": "id-1"}},
	}}
	m := NewManager(reader)
	if errReinit := m.Reinitialize(context.Background()); errReinit != nil {
		t.Fatalf("reinitialize: %v", errReinit)
	}

	reader.err = errors.New("db down")
	_ = m.OnConfigChanged(context.Background(), "oauth2Providers")

	if _, ok := m.Strategy("github"); !ok {
		t.Fatalf("previous strategies must survive a failed rebuild")
	}
}
