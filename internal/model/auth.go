// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// AdvisorDisplayName is the display name assigned on successful login.
const AdvisorDisplayName = "Principal Advisor"

// AuthState is the single-slot session flag for the admin panel. It is not
// a real session: no token, no expiry. It persists until explicitly reset.
type AuthState struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Username        string `json:"username,omitempty"`
}

// SignedIn returns the auth state set on successful login.
func SignedIn() AuthState {
	return AuthState{IsAuthenticated: true, Username: AdvisorDisplayName}
}

// SignedOut returns the reset auth state.
func SignedOut() AuthState {
	return AuthState{}
}
