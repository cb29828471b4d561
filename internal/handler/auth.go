// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/azure-estates/estates-go/internal/auth"
	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/render"
	"github.com/azure-estates/estates-go/internal/store"
)

// Session keys for the simulated recovery flow.
const (
	SessionKeyRecoveryCode  = "recovery_code"
	SessionKeyRecoveryEmail = "recovery_email"
)

// loginDelay is the perceived-latency pause on credential checks.
const loginDelay = 800 * time.Millisecond

// AuthHandler handles advisor sign-in, sign-out and the simulated
// account-recovery flow.
type AuthHandler struct {
	store          *store.Store
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	credentials    auth.CredentialChecker

	delay time.Duration
	sleep func(ctx context.Context, d time.Duration)
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(st *store.Store, renderer *render.Renderer, sm *scs.SessionManager, creds auth.CredentialChecker) *AuthHandler {
	return &AuthHandler{
		store:          st,
		renderer:       renderer,
		sessionManager: sm,
		credentials:    creds,
		delay:          loginDelay,
		sleep: func(ctx context.Context, d time.Duration) {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
			case <-t.C:
			}
		},
	}
}

// LoginForm renders the login page.
// GET /admin/login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "admin/login", render.TemplateData{
		Title: "Advisor Login",
	}); err != nil {
		logAndInternalError(w, "failed to render login", "error", err)
	}
}

// Login handles the login form submission. Failures get one generic
// denial message regardless of which field was wrong.
// POST /admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	h.sleep(r.Context(), h.delay)

	if !h.credentials.Check(username, password) {
		slog.Warn("login denied", "path", r.URL.Path)
		flashError(w, r, h.renderer, redirectLogin, auth.MsgLoginDenied)
		return
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	if err := h.store.SetAuth(r.Context(), model.SignedIn()); err != nil {
		logAndInternalError(w, "failed to persist auth state", "error", err)
		return
	}

	slog.Info("advisor logged in")
	flashSuccess(w, r, h.renderer, redirectAdmin, "Welcome back, "+model.AdvisorDisplayName+".")
}

// Logout signs the advisor out.
// POST /admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SetAuth(r.Context(), model.SignedOut()); err != nil {
		logAndInternalError(w, "failed to clear auth state", "error", err)
		return
	}

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("advisor logged out")
	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}

// RecoverData is the template payload for the recovery page.
type RecoverData struct {
	// Code is shown on the page once issued; no mail leaves the system
	// in this simulated flow.
	Code  string
	Email string
}

// RecoverForm renders the account recovery page.
// GET /admin/recover
func (h *AuthHandler) RecoverForm(w http.ResponseWriter, r *http.Request) {
	data := RecoverData{
		Code:  h.sessionManager.GetString(r.Context(), SessionKeyRecoveryCode),
		Email: h.sessionManager.GetString(r.Context(), SessionKeyRecoveryEmail),
	}

	if err := h.renderer.Render(w, r, "admin/recover", render.TemplateData{
		Title: "Account Recovery",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render recovery", "error", err)
	}
}

// RecoverRequest issues a recovery code for the submitted email.
// POST /admin/recover
func (h *AuthHandler) RecoverRequest(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectRecover) {
		return
	}

	email := r.FormValue("email")
	if !auth.ValidEmail(email) {
		flashError(w, r, h.renderer, redirectRecover, "Please enter a valid email address.")
		return
	}

	code := auth.GenerateCode()
	h.sessionManager.Put(r.Context(), SessionKeyRecoveryCode, code)
	h.sessionManager.Put(r.Context(), SessionKeyRecoveryEmail, email)

	slog.Info("recovery code issued")
	http.Redirect(w, r, redirectRecover, http.StatusSeeOther)
}

// RecoverVerify confirms the code and accepts a new password. The pair
// configured at startup stays authoritative; the "change" is simulated.
// POST /admin/recover/verify
func (h *AuthHandler) RecoverVerify(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectRecover) {
		return
	}

	issued := h.sessionManager.GetString(r.Context(), SessionKeyRecoveryCode)
	if issued == "" || r.FormValue("code") != issued {
		flashError(w, r, h.renderer, redirectRecover, auth.MsgCodeMismatch)
		return
	}

	if !auth.ValidPassword(r.FormValue("password")) {
		flashError(w, r, h.renderer, redirectRecover, auth.MsgWeakPassword)
		return
	}

	h.sessionManager.Remove(r.Context(), SessionKeyRecoveryCode)
	h.sessionManager.Remove(r.Context(), SessionKeyRecoveryEmail)

	flashSuccess(w, r, h.renderer, redirectLogin, auth.MsgProtocolUpdated)
}
