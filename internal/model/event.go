// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event levels
const (
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event is one entry of the capped application event log kept in the
// store and surfaced on the admin dashboard.
type Event struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Path      string `json:"path,omitempty"`
	Timestamp int64  `json:"timestamp"` // milliseconds since epoch
}

// OccurredAt returns the event instant as a time.Time.
func (e Event) OccurredAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}
