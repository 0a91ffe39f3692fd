// Package postgres stores storefront data in the Supabase Postgres database.
// Orders, PINs, metrics and roles use database/sql; the catalog uses gorm
// over the same pool.
package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db   *sql.DB
	gorm *gorm.DB
}

// New wraps an open pool.
func New(db *sql.DB) (*Store, error) {
	g, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening gorm session: %w", err)
	}
	return &Store{db: db, gorm: g}, nil
}
