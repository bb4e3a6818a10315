package database

import (
	"chainvoice/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate ledger tables
	err = db.AutoMigrate(
		&model.Invoice{},
		&model.TokenBalance{},
		&model.TokenAllowance{},
		&model.ChainTransaction{},
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to auto-migrate ledger tables")
	}

	return db, nil
}
