// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azure-estates/estates-go/internal/cache"
	"github.com/azure-estates/estates-go/internal/gate"
	"github.com/azure-estates/estates-go/internal/inquiry"
	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/render"
	"github.com/azure-estates/estates-go/internal/scheduler"
	"github.com/azure-estates/estates-go/internal/store"
)

// featuredCount is how many projects the home page showcases.
const featuredCount = 3

// FrontendHandler serves the public site: home, catalog, project detail
// and the inquiry form.
type FrontendHandler struct {
	store    *store.Store
	renderer *render.Renderer
	gate     *gate.Gate
	inquiry  *inquiry.Service
	catalog  *cache.TypedCache[[]model.Project]
}

// NewFrontendHandler creates a FrontendHandler.
func NewFrontendHandler(st *store.Store, renderer *render.Renderer, g *gate.Gate, svc *inquiry.Service, catalog *cache.TypedCache[[]model.Project]) *FrontendHandler {
	return &FrontendHandler{
		store:    st,
		renderer: renderer,
		gate:     g,
		inquiry:  svc,
		catalog:  catalog,
	}
}

// projects returns the catalog through the read cache.
func (h *FrontendHandler) projects(ctx context.Context) ([]model.Project, error) {
	cached, err := h.catalog.GetOrSet(ctx, scheduler.CacheKeyProjects, func() (*[]model.Project, error) {
		projects := h.store.Projects(ctx)
		return &projects, nil
	})
	if err != nil {
		return nil, err
	}
	return *cached, nil
}

// HomeData is the template payload for the home page.
type HomeData struct {
	Featured []model.Project
	Projects []model.Project
}

// Home renders the landing page.
// GET /
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load catalog", "error", err, "path", r.URL.Path)
		return
	}

	featured := projects
	if len(featured) > featuredCount {
		featured = featured[:featuredCount]
	}

	if err := h.renderer.Render(w, r, "site/home", render.TemplateData{
		Title: "Home",
		Data:  HomeData{Featured: featured, Projects: projects},
	}); err != nil {
		logAndInternalError(w, "failed to render home", "error", err)
	}
}

// ServiceEntry is one advisory offering on the services page.
type ServiceEntry struct {
	Title       string
	Subtitle    string
	Description string
}

// serviceEntries is the fixed advisory catalog. Purely editorial, no
// persistence behind it.
var serviceEntries = []ServiceEntry{
	{
		Title:       "Real Estate Consultant",
		Subtitle:    "Bespoke Strategic Advisory",
		Description: "Our consultancy transcends simple brokerage. We provide discerning patrons with deep market intelligence, architectural evaluation, and strategic acquisition frameworks tailored for multi-generational wealth preservation.",
	},
	{
		Title:       "Estate Portfolio Management",
		Subtitle:    "Unified Asset Stewardship",
		Description: "A comprehensive approach to managing global real estate interests. From optimizing yields in commercial holdings to maintaining the architectural integrity of private residences, we ensure your portfolio remains a coherent legacy.",
	},
	{
		Title:       "Strategic Acquisitions",
		Subtitle:    "Off-Market Intelligence",
		Description: "Access to the world's most exclusive properties before they enter the public consciousness. Our network provides privileged entry to off-market landmarks that define sovereign living.",
	},
}

// Services renders the static advisory services page.
// GET /services
func (h *FrontendHandler) Services(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "site/services", render.TemplateData{
		Title: "Services",
		Data:  serviceEntries,
	}); err != nil {
		logAndInternalError(w, "failed to render services", "error", err)
	}
}

// ProjectListData is the template payload for the catalog page.
type ProjectListData struct {
	Projects []model.Project
	Status   string
	Statuses []string
}

// Projects renders the catalog, optionally filtered by status.
// GET /projects?status=...
func (h *FrontendHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load catalog", "error", err, "path", r.URL.Path)
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && model.IsValidStatus(status) {
		filtered := make([]model.Project, 0, len(projects))
		for _, p := range projects {
			if p.Status == status {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	} else {
		status = ""
	}

	if err := h.renderer.Render(w, r, "site/projects", render.TemplateData{
		Title: "Projects",
		Data: ProjectListData{
			Projects: projects,
			Status:   status,
			Statuses: model.Statuses(),
		},
	}); err != nil {
		logAndInternalError(w, "failed to render projects", "error", err)
	}
}

// ProjectDetailData is the template payload for the detail page.
type ProjectDetailData struct {
	Project  model.Project
	Unlocked bool
}

// ProjectDetail renders a single project. Visitors who have not enquired
// see the teaser with the inquiry form; unlocked visitors see the full
// view.
// GET /projects/{id}
func (h *FrontendHandler) ProjectDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, ok := h.store.ProjectByID(r.Context(), id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	state := h.gate.For(r.Context(), project.ID)

	if err := h.renderer.Render(w, r, "site/project", render.TemplateData{
		Title: project.Title,
		Data: ProjectDetailData{
			Project:  project,
			Unlocked: state.Unlocked(),
		},
	}); err != nil {
		logAndInternalError(w, "failed to render project", "error", err)
	}
}

// Enquire handles the inquiry form submission and unlocks the project.
// POST /projects/{id}/enquire
func (h *FrontendHandler) Enquire(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detailURL := fmt.Sprintf(redirectProjectDetail, id)

	if !parseFormOrRedirect(w, r, h.renderer, detailURL) {
		return
	}

	_, err := h.inquiry.Capture(r.Context(), inquiry.Submission{
		ProjectID:  id,
		Name:       r.FormValue("name"),
		Email:      r.FormValue("email"),
		Phone:      r.FormValue("phone"),
		Message:    r.FormValue("message"),
		RemoteAddr: r.RemoteAddr,
		UserAgent:  r.UserAgent(),
	})
	switch {
	case err == nil:
		flashSuccess(w, r, h.renderer, detailURL, "Thank you. Our Principal Advisor will contact you shortly.")
	case errors.Is(err, inquiry.ErrNameRequired):
		flashError(w, r, h.renderer, detailURL, "Please provide your name.")
	case errors.Is(err, inquiry.ErrEmailRequired):
		flashError(w, r, h.renderer, detailURL, "Please provide your email address.")
	case errors.Is(err, inquiry.ErrPhoneRequired):
		flashError(w, r, h.renderer, detailURL, "Please provide your phone number.")
	case errors.Is(err, inquiry.ErrUnknownProject):
		http.NotFound(w, r)
	default:
		slog.Error("inquiry capture failed", "error", err, "project_id", id)
		flashError(w, r, h.renderer, detailURL, "Something went wrong. Please try again.")
	}
}
