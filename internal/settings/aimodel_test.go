package settings

import (
	"context"
	"testing"

	"github.com/blinko-space/blinko-server/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedModel(t *testing.T, conn *gorm.DB, title, modelKey string) models.AIModel {
	t.Helper()
	baseURL := "https://api.openai.com/v1"
	apiKey := "sk-test"
	provider := models.AIProvider{Title: "OpenAI", Provider: "openai", BaseURL: &baseURL, APIKey: &apiKey}
	if errCreate := conn.Create(&provider).Error; errCreate != nil {
		t.Fatalf("create provider: %v", errCreate)
	}
	model := models.AIModel{
		Title:        title,
		ModelKey:     modelKey,
		Capabilities: datatypes.JSON(`{"inference":true}`),
		ProviderID:   provider.ID,
	}
	if errCreate := conn.Create(&model).Error; errCreate != nil {
		t.Fatalf("create model: %v", errCreate)
	}
	return model
}

func TestResolveAIModelReturnsDescriptor(t *testing.T) {
	svc, conn := newTestService(t)
	model := seedModel(t, conn, "GPT-4o", "gpt-4o")
	seedEntry(t, conn, "mainModelId", nil, float64(model.ID))

	descriptor, errResolve := svc.ResolveAIModel(context.Background(), Caller{ID: 1, Role: "user"}, ModelKindMain)
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	if descriptor == nil {
		t.Fatalf("expected a descriptor")
	}
	if descriptor.Title != "GPT-4o" || descriptor.ModelKey != "gpt-4o" {
		t.Fatalf("unexpected descriptor %+v", descriptor)
	}
	if descriptor.Provider.Provider != "openai" {
		t.Fatalf("unexpected provider %+v", descriptor.Provider)
	}
	if descriptor.Provider.BaseURL == nil || *descriptor.Provider.BaseURL != "https://api.openai.com/v1" {
		t.Fatalf("unexpected baseURL %v", descriptor.Provider.BaseURL)
	}
}

func TestResolveAIModelAbsentConfigReturnsNil(t *testing.T) {
	svc, _ := newTestService(t)

	descriptor, errResolve := svc.ResolveAIModel(context.Background(), Caller{ID: 1, Role: "user"}, ModelKindEmbedding)
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	if descriptor != nil {
		t.Fatalf("expected nil descriptor when no model id is configured")
	}
}

func TestResolveAIModelUnknownIDReturnsNil(t *testing.T) {
	svc, conn := newTestService(t)
	seedEntry(t, conn, "mainModelId", nil, float64(999))

	descriptor, errResolve := svc.ResolveAIModel(context.Background(), Caller{ID: 1, Role: "user"}, ModelKindMain)
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	if descriptor != nil {
		t.Fatalf("expected nil descriptor for a stale model id")
	}
}

func TestResolveAIModelRejectsUnknownKind(t *testing.T) {
	svc, _ := newTestService(t)

	if _, errResolve := svc.ResolveAIModel(context.Background(), Caller{ID: 1}, ModelKind("chatModel")); errResolve == nil {
		t.Fatalf("expected an error for an unknown kind")
	}
}
