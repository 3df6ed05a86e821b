package repo

import (
	"PassLocker/internal/model"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает SQLite-базу эмулятора и применяет миграции.
// Используется чистый Go-драйвер (modernc.org/sqlite), cgo не нужен.
func InitDB(dsn string) (*gorm.DB, error) {
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Locker{}, &model.Pin{}); err != nil {
		return nil, err
	}
	return db, nil
}
