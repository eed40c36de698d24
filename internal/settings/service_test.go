package settings

import (
	"testing"

	dbpkg "github.com/blinko-space/blinko-server/internal/db"
	"github.com/blinko-space/blinko-server/internal/models"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn, errOpen := dbpkg.Open(":memory:")
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := dbpkg.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return NewService(conn), conn
}

func seedEntry(t *testing.T, conn *gorm.DB, key string, userID *uint64, value any) models.ConfigEntry {
	t.Helper()
	encoded, errEncode := EncodeValue(value)
	if errEncode != nil {
		t.Fatalf("encode value for %s: %v", key, errEncode)
	}
	entry := models.ConfigEntry{Key: key, UserID: userID, Config: encoded}
	if errCreate := conn.Create(&entry).Error; errCreate != nil {
		t.Fatalf("seed entry %s: %v", key, errCreate)
	}
	return entry
}

func ptr(id uint64) *uint64 {
	return &id
}

func countEntries(t *testing.T, conn *gorm.DB, key string, userID *uint64) int64 {
	t.Helper()
	query := conn.Model(&models.ConfigEntry{}).Where("key = ?", key)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	var count int64
	if errCount := query.Count(&count).Error; errCount != nil {
		t.Fatalf("count entries for %s: %v", key, errCount)
	}
	return count
}
