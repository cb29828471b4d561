// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store implements the durable key-scoped persistence layer of the
// catalog. Four independently keyed JSON records (projects, leads, auth,
// enquired set) live behind an injectable Backend: SQLite or MySQL in
// production, an in-memory map in tests.
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Backend.Get when no value has been
// persisted under the requested key yet.
var ErrKeyNotFound = errors.New("store: key not found")

// Backend is the raw key-value persistence contract. Implementations must
// be safe for concurrent use.
type Backend interface {
	// Get returns the value persisted under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value persisted under key in a single write.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the backend.
	Close() error
}
