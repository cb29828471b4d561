// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/azure-estates/estates-go/internal/middleware"
	"github.com/azure-estates/estates-go/internal/store"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Frontend *FrontendHandler
	Auth     *AuthHandler
	Admin    *AdminHandler
	Projects *ProjectsHandler
	Leads    *LeadsHandler
	Media    *MediaHandler
	Assist   *AssistHandler
	Health   *HealthHandler
}

// Routes mounts all application routes on r. Public pages are served at
// the root, everything for the advisor lives under /admin behind the
// auth guard.
func Routes(r chi.Router, st *store.Store, h Handlers) {
	// Public site
	r.Get(RouteRoot, h.Frontend.Home)
	r.Get(RouteProjects, h.Frontend.Projects)
	r.Get(RouteServices, h.Frontend.Services)
	r.Get(RouteProjectsID, h.Frontend.ProjectDetail)
	r.Post(RouteEnquire, h.Frontend.Enquire)

	// Health endpoints
	r.Get("/health", h.Health.Health)
	r.Get("/health/live", h.Health.Liveness)
	r.Get("/health/ready", h.Health.Readiness)

	r.Route("/admin", func(r chi.Router) {
		// Login and recovery stay reachable while signed out.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RedirectIfSignedIn(st, redirectAdmin))

			r.Get(RouteLogin, h.Auth.LoginForm)
			r.Post(RouteLogin, h.Auth.Login)
			r.Get(RouteRecover, h.Auth.RecoverForm)
			r.Post(RouteRecover, h.Auth.RecoverRequest)
			r.Post(RouteRecoverVerify, h.Auth.RecoverVerify)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Guard(st))

			r.Get(RouteRoot, h.Admin.Dashboard)
			r.Get(RouteLogout, h.Auth.Logout)
			r.Post(RouteLogout, h.Auth.Logout)

			r.Get(RouteProjects, h.Projects.List)
			r.Get(RouteProjects+"/new", h.Projects.NewForm)
			r.Post(RouteProjects, h.Projects.Save)
			r.Get(RouteProjectsID, h.Projects.EditForm)
			r.Post(RouteProjectsID, h.Projects.Save)
			r.Get(RouteProjectsID+"/delete", h.Projects.ConfirmDelete)
			r.Post(RouteProjectsID+"/delete", h.Projects.Delete)

			r.Get(RouteLeads, h.Leads.List)
			r.Get(RouteLeadsExport, h.Leads.ExportCSV)

			r.Get(RouteSettings, h.Admin.SettingsForm)
			r.Post(RouteSettings, h.Admin.SettingsUpdate)

			r.Post(RouteMediaDataURL, h.Media.DataURL)
			r.Post(RouteAssistTagline, h.Assist.Tagline)
		})
	})
}
