// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth holds the advisor portal credential check and the simulated
// account-recovery flow.
package auth

import (
	"crypto/subtle"
	"strings"
)

// MinPasswordLength is the floor enforced by the recovery and settings
// forms. The visitor-facing message calls it a complexity requirement.
const MinPasswordLength = 6

// Messages surfaced verbatim to the advisor.
const (
	MsgLoginDenied     = "Unauthorized entry denied."
	MsgProtocolUpdated = "Security Protocol Updated."
	MsgCodeMismatch    = "Security code mismatch."
	MsgWeakPassword    = "Password must meet complexity requirements (6+ chars)."
)

// CredentialChecker validates a username/password pair.
type CredentialChecker interface {
	Check(username, password string) bool
}

// StaticCredentials checks against a single configured account.
type StaticCredentials struct {
	username string
	password string
}

func NewStaticCredentials(username, password string) StaticCredentials {
	return StaticCredentials{username: username, password: password}
}

// Check compares both fields in constant time.
func (c StaticCredentials) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.password)) == 1
	return userOK && passOK
}

// ValidEmail is the deliberately loose check used by the recovery form.
func ValidEmail(email string) bool {
	return strings.Contains(email, "@")
}

// ValidPassword reports whether a candidate password meets the length floor.
func ValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}
