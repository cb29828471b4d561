// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/azure-estates/estates-go/internal/auth"
	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/render"
	"github.com/azure-estates/estates-go/internal/store"
)

// recentLeadCount limits the dashboard lead preview.
const recentLeadCount = 5

// AdminHandler serves the dashboard and settings views.
type AdminHandler struct {
	store    *store.Store
	renderer *render.Renderer
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(st *store.Store, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{store: st, renderer: renderer}
}

// DashboardData is the template payload for the dashboard.
type DashboardData struct {
	ProjectCount int
	LeadCount    int
	RecentLeads  []model.Lead
	Events       []model.Event
	Advisor      string
}

// Dashboard renders the admin overview.
// GET /admin
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects := h.store.Projects(ctx)
	leads := h.store.Leads(ctx)
	events := h.store.Events(ctx)

	recent := leads
	if len(recent) > recentLeadCount {
		recent = recent[:recentLeadCount]
	}

	authState := h.store.Auth(ctx)

	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title:    "Dashboard",
		SignedIn: true,
		Data: DashboardData{
			ProjectCount: len(projects),
			LeadCount:    len(leads),
			RecentLeads:  recent,
			Events:       events,
			Advisor:      authState.Username,
		},
	}); err != nil {
		logAndInternalError(w, "failed to render dashboard", "error", err)
	}
}

// SettingsForm renders the settings page.
// GET /admin/settings
func (h *AdminHandler) SettingsForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "admin/settings", render.TemplateData{
		Title:    "Settings",
		SignedIn: true,
	}); err != nil {
		logAndInternalError(w, "failed to render settings", "error", err)
	}
}

// SettingsUpdate accepts a password change. Like the recovery flow, the
// change is acknowledged but the configured pair stays authoritative.
// POST /admin/settings
func (h *AdminHandler) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminSettings) {
		return
	}

	if !auth.ValidPassword(r.FormValue("password")) {
		flashError(w, r, h.renderer, redirectAdminSettings, auth.MsgWeakPassword)
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminSettings, auth.MsgProtocolUpdated)
}
