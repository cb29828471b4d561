// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"

	// RouteProjects is the public project listing route.
	RouteProjects = "/projects"
	// RouteProjectsID is the public project detail route pattern.
	RouteProjectsID = RouteProjects + RouteParamID
	// RouteEnquire is the inquiry submission route pattern.
	RouteEnquire = RouteProjectsID + "/enquire"
	// RouteServices is the static services page.
	RouteServices = "/services"

	// RouteLogin is the advisor login route.
	RouteLogin = "/login"
	// RouteLogout is the advisor logout route.
	RouteLogout = "/logout"
	// RouteRecover is the account recovery route.
	RouteRecover = "/recover"
	// RouteRecoverVerify is the recovery code confirmation route.
	RouteRecoverVerify = RouteRecover + "/verify"

	// RouteLeads is the leads admin route.
	RouteLeads = "/leads"
	// RouteLeadsExport is the leads CSV export route.
	RouteLeadsExport = RouteLeads + "/export"
	// RouteSettings is the settings admin route.
	RouteSettings = "/settings"
	// RouteMediaDataURL is the media conversion endpoint.
	RouteMediaDataURL = "/media/dataurl"
	// RouteAssistTagline is the copy assist endpoint.
	RouteAssistTagline = "/assist/tagline"
)

const (
	redirectAdmin            = "/admin"
	redirectAdminProjects    = redirectAdmin + RouteProjects
	redirectAdminProjectsNew = redirectAdminProjects + "/new"
	redirectAdminLeads       = redirectAdmin + RouteLeads
	redirectAdminSettings    = redirectAdmin + RouteSettings
	redirectLogin            = redirectAdmin + RouteLogin
	redirectRecover          = redirectAdmin + RouteRecover

	redirectAdminProjectsID = redirectAdminProjects + "/%s"
	redirectProjectDetail   = RouteProjects + "/%s"
)
