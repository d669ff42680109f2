// Package database opens the MySQL connection pool backing the account,
// catalogue and review repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/reviewhub/reviewhub-api/internal/config"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 10
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// DSN builds the driver connection string from config. DATETIME columns
// scan into time.Time (parseTime) and are interpreted as UTC, matching
// how the repositories store pub_date and the audit timestamps.
func DSN(cfg config.Config) string {
	cred := cfg.DBUser
	if cfg.DBPass != "" {
		cred = cfg.DBUser + ":" + cfg.DBPass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=%s",
		cred, cfg.DBHost, cfg.DBPort, cfg.DBName, url.QueryEscape("UTC"))
}

// Open connects to MySQL, applies the pool limits and verifies the
// connection before handing the pool to the repositories.
func Open(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}
