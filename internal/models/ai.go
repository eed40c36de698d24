package models

import (
	"time"

	"gorm.io/datatypes"
)

// AIProvider stores connection details for an AI provider endpoint.
type AIProvider struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title    string  `gorm:"type:text;not null"` // Display title.
	Provider string  `gorm:"type:text;not null"` // Provider kind, e.g. openai, ollama.
	BaseURL  *string `gorm:"type:text"`          // Endpoint base URL; nil when the kind implies one.
	APIKey   *string `gorm:"type:text"`          // Credential; nil for keyless endpoints.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (AIProvider) TableName() string {
	return "ai_providers"
}

// AIModel stores a model offered by a provider.
type AIModel struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title        string         `gorm:"type:text;not null"`    // Display title.
	ModelKey     string         `gorm:"type:text;not null"`    // Provider-side model identifier.
	Capabilities datatypes.JSON `gorm:"type:jsonb"`            // Capability flags in JSON.
	ProviderID   uint64         `gorm:"not null;index"`        // Owning provider.
	Provider     AIProvider     `gorm:"foreignKey:ProviderID"` // Joined provider row.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (AIModel) TableName() string {
	return "ai_models"
}
