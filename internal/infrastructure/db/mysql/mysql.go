package mysql

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Connect returns a connected GORM DB instance.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for all persisted records.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRecord{},
		&reportRecord{},
		&photoRecord{},
		&commentRecord{},
	)
}
