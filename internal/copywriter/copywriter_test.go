// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package copywriter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTaglineNoAPIKey(t *testing.T) {
	w := New("", "gpt-4o-mini", discardLogger())

	if w.Enabled() {
		t.Error("Enabled() = true without an API key")
	}
	if got := w.Tagline(context.Background(), "The Ivory Waterfront", "Palm Jumeirah, Dubai"); got != FallbackEmpty {
		t.Errorf("Tagline() = %q; want empty-response fallback", got)
	}
}

func TestTaglineModelError(t *testing.T) {
	w := &Writer{
		log: discardLogger(),
		generate: func(context.Context, string) (string, error) {
			return "", errors.New("rate limited")
		},
	}

	if got := w.Tagline(context.Background(), "The Ivory Waterfront", "Dubai"); got != FallbackError {
		t.Errorf("Tagline() = %q; want error fallback", got)
	}
}

func TestTaglineEmptyCompletion(t *testing.T) {
	w := &Writer{
		log: discardLogger(),
		generate: func(context.Context, string) (string, error) {
			return "  \n ", nil
		},
	}

	if got := w.Tagline(context.Background(), "The Ivory Waterfront", "Dubai"); got != FallbackEmpty {
		t.Errorf("Tagline() = %q; want empty-response fallback", got)
	}
}

func TestTaglinePassesProjectIntoPrompt(t *testing.T) {
	var prompt string
	w := &Writer{
		log: discardLogger(),
		generate: func(_ context.Context, p string) (string, error) {
			prompt = p
			return "A home above the clouds. A legacy below the stars.", nil
		},
	}

	got := w.Tagline(context.Background(), "Sky Mansion", "Downtown Dubai")
	if got != "A home above the clouds. A legacy below the stars." {
		t.Errorf("Tagline() = %q", got)
	}
	for _, want := range []string{"Sky Mansion", "Downtown Dubai"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt %q does not mention %q", prompt, want)
		}
	}
}
