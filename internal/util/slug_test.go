// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "The Ivory Waterfront", "the-ivory-waterfront"},
		{"accents", "Résidence Élysée", "residence-elysee"},
		{"transliteration", "Проект Москва", "proekt-moskva"},
		{"punctuation", "Sky Mansion (Tower B)", "sky-mansion-tower-b"},
		{"multiple spaces", "a   b", "a-b"},
		{"leading and trailing", " -hello- ", "hello"},
		{"empty", "", ""},
		{"only symbols", "!@#$%", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "abc-123", "the-ivory-waterfront"}
	for _, s := range valid {
		assert.True(t, IsValidSlug(s), "IsValidSlug(%q)", s)
	}

	invalid := []string{"", "-abc", "abc-", "a--b", "Hello", "a b", "a_b"}
	for _, s := range invalid {
		assert.False(t, IsValidSlug(s), "IsValidSlug(%q)", s)
	}
}
