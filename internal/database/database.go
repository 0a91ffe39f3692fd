package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/01moynul/bales-storefront/internal/config"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const pingTimeout = 5 * time.Second

// OpenDB opens the primary Postgres pool described by cfg.
func OpenDB(cfg config.Config) (*sql.DB, error) {
	// 1. Open the pool through pgx's database/sql driver
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// 2. Configure the connection pool settings
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	// 3. Verify the connection
	if err := ping(db); err != nil {
		db.Close()
		log.Printf("ERROR: connecting to Postgres: %v", err)
		return nil, err
	}

	log.Println("Database connection pool established successfully (Postgres)")
	return db, nil
}

// OpenLegacyDB opens the read-only MySQL database kept from the previous
// storefront. Orders placed there are still trackable.
func OpenLegacyDB(dsn string) (*sql.DB, error) {
	dsn, err := legacyDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := ping(db); err != nil {
		db.Close()
		log.Printf("ERROR: connecting to legacy MySQL: %v", err)
		return nil, err
	}

	log.Println("Legacy order database connected (read-only)")
	return db, nil
}

// legacyDSN forces parseTime so DATETIME columns scan into time.Time.
func legacyDSN(dsn string) (string, error) {
	c, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	c.ParseTime = true
	if c.Loc == nil {
		c.Loc = time.UTC
	}
	return c.FormatDSN(), nil
}

func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return db.PingContext(ctx)
}
