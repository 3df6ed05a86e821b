package repo

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует SQLite (modernc.org/sqlite) в temp-каталоге теста
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "emulator.db"))
	if err != nil {
		t.Fatalf("failed to init sqlite (modernc): %v", err)
	}
	return db
}
