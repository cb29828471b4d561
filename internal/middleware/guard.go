// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for advisor authentication
// and request protection.
package middleware

import (
	"net/http"

	"github.com/azure-estates/estates-go/internal/store"
)

// LoginPath is where unauthenticated advisors are sent.
const LoginPath = "/admin/login"

// Guard requires an authenticated advisor. The decision reads the
// persisted auth state, so signing out from any handler takes effect on
// the next request everywhere.
func Guard(st *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !st.Auth(r.Context()).IsAuthenticated {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfSignedIn sends an already signed in advisor straight to the
// dashboard, mirroring Guard for the login and recovery pages.
func RedirectIfSignedIn(st *store.Store, target string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if st.Auth(r.Context()).IsAuthenticated {
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
