package models

import (
	"time"

	"gorm.io/datatypes"
)

// ConfigEntry stores a single configuration row in the database.
//
// A nil UserID marks a global row; otherwise the row belongs to one user.
// There is deliberately no unique index on (key, user_id): writes repair
// duplicate rows instead, so a pre-existing corrupted store stays loadable.
type ConfigEntry struct {
	ID     uint64         `gorm:"primaryKey;autoIncrement"`         // Primary key.
	Key    string         `gorm:"type:varchar(255);not null;index"` // Configuration key.
	UserID *uint64        `gorm:"index"`                            // Owning user; nil means global.
	Config datatypes.JSON `gorm:"type:jsonb;not null"`              // Tagged value: {"type": ..., "value": ...}.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (ConfigEntry) TableName() string {
	return "configs"
}
