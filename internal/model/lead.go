// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Lead is a captured inquiry. Once created it is immutable: leads are
// never updated or deleted, and ProjectName is a snapshot of the project
// title at submission time that may diverge if the project is renamed.
type Lead struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"` // milliseconds since epoch

	// Submission context, recorded alongside the inquiry when available.
	IPAddress string `json:"ipAddress,omitempty"`
	Device    string `json:"device,omitempty"`
	Country   string `json:"country,omitempty"`
}

// SubmittedAt returns the submission instant as a time.Time.
func (l Lead) SubmittedAt() time.Time {
	return time.UnixMilli(l.Timestamp)
}
