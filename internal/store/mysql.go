// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver for database/sql
)

// MySQLBackend persists store entries in a MySQL key-value table. It is
// selected when a DSN is configured and exists for deployments that keep
// all state on a managed database instead of a local file.
type MySQLBackend struct {
	db *sql.DB
}

// NewMySQLBackend opens a MySQL connection and ensures the schema exists.
func NewMySQLBackend(dsn string) (*MySQLBackend, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening mysql: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging mysql: %w", err)
	}

	// Goose migrations are SQLite-dialect; MySQL gets its schema the way
	// the scheduler overrides table does: idempotent DDL at startup.
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS store_entries (
		` + "`key`" + ` VARCHAR(191) PRIMARY KEY,
		value LONGTEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating store_entries: %w", err)
	}

	return &MySQLBackend{db: db}, nil
}

// Get implements Backend.
func (b *MySQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx,
		"SELECT value FROM store_entries WHERE `key` = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, nil
}

// Set implements Backend.
func (b *MySQLBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := b.db.ExecContext(ctx,
		"INSERT INTO store_entries (`key`, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)",
		key, value)
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Close implements Backend.
func (b *MySQLBackend) Close() error {
	return b.db.Close()
}
