// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strconv"
	"testing"
)

func TestStaticCredentialsCheck(t *testing.T) {
	creds := NewStaticCredentials("admin", "Sign@2025")

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"valid", "admin", "Sign@2025", true},
		{"wrong password", "admin", "sign@2025", false},
		{"wrong username", "root", "Sign@2025", false},
		{"both wrong", "root", "toor", false},
		{"empty", "", "", false},
		{"username case sensitive", "Admin", "Sign@2025", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := creds.Check(tt.username, tt.password); got != tt.want {
				t.Errorf("Check(%q, %q) = %v; want %v", tt.username, tt.password, got, tt.want)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	if !ValidEmail("advisor@example.com") {
		t.Error("ValidEmail rejected a plain address")
	}
	if ValidEmail("not-an-address") {
		t.Error("ValidEmail accepted a string without @")
	}
}

func TestValidPassword(t *testing.T) {
	if ValidPassword("short") {
		t.Error("ValidPassword accepted a five character password")
	}
	if !ValidPassword("longer") {
		t.Error("ValidPassword rejected a six character password")
	}
}

func TestGenerateCodeRange(t *testing.T) {
	for range 200 {
		code := GenerateCode()
		if len(code) != 6 {
			t.Fatalf("GenerateCode() = %q; want six digits", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("GenerateCode() = %q; not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("GenerateCode() = %d; out of range", n)
		}
	}
}
