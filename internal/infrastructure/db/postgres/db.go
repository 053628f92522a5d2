package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ekgus419/go-api-boilerplate/internal/config"
)

// Connect opens the postgres database and migrates the schema.
func Connect(cfg config.DatabaseConfig, logger gormlogger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&UserModel{}); err != nil {
		return nil, err
	}

	return db, nil
}
