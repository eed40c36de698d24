package models

import "time"

// User roles.
const (
	// RoleSuperAdmin grants global config writes and full row visibility.
	RoleSuperAdmin = "superadmin"
	// RoleUser is the default role for registered accounts.
	RoleUser = "user"
)

// User represents an account stored in the database.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Username string `gorm:"type:text;not null;uniqueIndex"` // Unique login name.
	Password string `gorm:"type:text;not null"`             // Hashed password.
	Nickname string `gorm:"type:text"`                      // Display name.

	Role string `gorm:"type:varchar(32);not null;default:'user'"` // superadmin or user.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// IsSuperAdmin reports whether the user holds the superadmin role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
