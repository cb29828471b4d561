// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/store"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGuardRedirectsSignedOut(t *testing.T) {
	st := store.New(store.NewMemoryBackend())
	handler := Guard(st)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d; want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Errorf("Location = %q; want %q", loc, LoginPath)
	}
}

func TestGuardPassesSignedIn(t *testing.T) {
	st := store.New(store.NewMemoryBackend())
	if err := st.SetAuth(context.Background(), model.SignedIn()); err != nil {
		t.Fatalf("SetAuth() error = %v", err)
	}

	handler := Guard(st)(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; want 200", rec.Code)
	}
}

func TestGuardSeesSignOutImmediately(t *testing.T) {
	st := store.New(store.NewMemoryBackend())
	ctx := context.Background()
	_ = st.SetAuth(ctx, model.SignedIn())

	handler := Guard(st)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status before sign-out = %d; want 200", rec.Code)
	}

	_ = st.SetAuth(ctx, model.SignedOut())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status after sign-out = %d; want 303", rec.Code)
	}
}

func TestRedirectIfSignedIn(t *testing.T) {
	st := store.New(store.NewMemoryBackend())
	handler := RedirectIfSignedIn(st, "/admin")(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, LoginPath, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("signed-out status = %d; want 200", rec.Code)
	}

	_ = st.SetAuth(context.Background(), model.SignedIn())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, LoginPath, nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("signed-in status = %d; want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q; want /admin", loc)
	}
}
