package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/blinko-space/blinko-server/internal/models"
	"gorm.io/gorm"
)

// ModelKind selects which configured AI model to resolve.
type ModelKind string

// Supported model kinds. Each maps to the config key "<kind>Id".
const (
	ModelKindMain      ModelKind = "mainModel"
	ModelKindEmbedding ModelKind = "embeddingModel"
	ModelKindVoice     ModelKind = "voiceModel"
	ModelKindRerank    ModelKind = "rerankModel"
	ModelKindImage     ModelKind = "imageModel"
	ModelKindAudio     ModelKind = "audioModel"
)

// ErrUnknownModelKind is returned for a kind outside the supported set.
var ErrUnknownModelKind = errors.New("settings: unknown model kind")

// Valid reports whether the kind is one of the supported model kinds.
func (k ModelKind) Valid() bool {
	switch k {
	case ModelKindMain, ModelKindEmbedding, ModelKindVoice, ModelKindRerank, ModelKindImage, ModelKindAudio:
		return true
	default:
		return false
	}
}

// ConfigKey returns the config key holding the model id for this kind.
func (k ModelKind) ConfigKey() string {
	return string(k) + "Id"
}

// AIProviderDescriptor is the provider half of a resolved model descriptor.
type AIProviderDescriptor struct {
	ID       uint64  `json:"id"`
	Title    string  `json:"title"`
	Provider string  `json:"provider"`
	BaseURL  *string `json:"baseURL"`
	APIKey   *string `json:"apiKey"`
}

// AIModelDescriptor is the fully-populated model descriptor handed to AI
// consumers. It never exposes store fields beyond the ones listed here.
type AIModelDescriptor struct {
	Title        string               `json:"title"`
	ModelKey     string               `json:"modelKey"`
	Capabilities json.RawMessage      `json:"capabilities"`
	Provider     AIProviderDescriptor `json:"provider"`
}

// ResolveAIModel resolves the configured model of the given kind for the
// caller, joined with its provider. It returns (nil, nil) when no model id
// is configured or the id no longer matches a model; absence is not an error.
func (s *Service) ResolveAIModel(ctx context.Context, caller Caller, kind ModelKind) (*AIModelDescriptor, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModelKind, kind)
	}

	cfg, errResolve := s.resolve(ctx, caller, false)
	if errResolve != nil {
		return nil, errResolve
	}
	modelID := modelIDFromValue(cfg[kind.ConfigKey()])
	if modelID == 0 {
		return nil, nil
	}

	var model models.AIModel
	if errFind := s.db.WithContext(ctx).Preload("Provider").First(&model, modelID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("settings: load model %d: %w", modelID, errFind)
	}

	return &AIModelDescriptor{
		Title:        model.Title,
		ModelKey:     model.ModelKey,
		Capabilities: json.RawMessage(model.Capabilities),
		Provider: AIProviderDescriptor{
			ID:       model.Provider.ID,
			Title:    model.Provider.Title,
			Provider: model.Provider.Provider,
			BaseURL:  model.Provider.BaseURL,
			APIKey:   model.Provider.APIKey,
		},
	}, nil
}

// modelIDFromValue coerces a stored config value into a model id.
// Zero means unset.
func modelIDFromValue(value any) uint64 {
	switch v := value.(type) {
	case float64:
		if v > 0 {
			return uint64(v)
		}
	case int:
		if v > 0 {
			return uint64(v)
		}
	case int64:
		if v > 0 {
			return uint64(v)
		}
	case uint64:
		return v
	case json.Number:
		if id, err := strconv.ParseUint(v.String(), 10, 64); err == nil {
			return id
		}
	case string:
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			return id
		}
	}
	return 0
}
