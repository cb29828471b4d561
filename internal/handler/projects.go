// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/azure-estates/estates-go/internal/cache"
	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/render"
	"github.com/azure-estates/estates-go/internal/scheduler"
	"github.com/azure-estates/estates-go/internal/store"
)

// ProjectsHandler handles admin project CRUD.
type ProjectsHandler struct {
	store    *store.Store
	renderer *render.Renderer
	cache    cache.Cacher
}

// NewProjectsHandler creates a ProjectsHandler.
func NewProjectsHandler(st *store.Store, renderer *render.Renderer, c cache.Cacher) *ProjectsHandler {
	return &ProjectsHandler{store: st, renderer: renderer, cache: c}
}

// invalidateCatalog drops the cached catalog after any write.
func (h *ProjectsHandler) invalidateCatalog(r *http.Request) {
	if err := h.cache.Delete(r.Context(), scheduler.CacheKeyProjects); err != nil {
		slog.Warn("failed to invalidate catalog cache", "error", err)
	}
}

// ProjectListAdminData is the template payload for the admin list.
type ProjectListAdminData struct {
	Projects []model.Project
}

// List renders the admin project list.
// GET /admin/projects
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects := h.store.Projects(r.Context())

	if err := h.renderer.Render(w, r, "admin/projects", render.TemplateData{
		Title:    "Projects",
		SignedIn: true,
		Data:     ProjectListAdminData{Projects: projects},
	}); err != nil {
		logAndInternalError(w, "failed to render project list", "error", err)
	}
}

// ProjectFormData is the template payload for the create/edit form.
type ProjectFormData struct {
	Project  model.Project
	IsNew    bool
	Statuses []string
}

// NewForm renders an empty project form.
// GET /admin/projects/new
func (h *ProjectsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, model.NewProject(), true)
}

// EditForm renders the form pre-filled with an existing project.
// GET /admin/projects/{id}
func (h *ProjectsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, ok := h.store.ProjectByID(r.Context(), id)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminProjects, "Project not found")
		return
	}

	h.renderForm(w, r, project, false)
}

func (h *ProjectsHandler) renderForm(w http.ResponseWriter, r *http.Request, project model.Project, isNew bool) {
	if err := h.renderer.Render(w, r, "admin/project_form", render.TemplateData{
		Title:    project.Title,
		SignedIn: true,
		Data: ProjectFormData{
			Project:  project,
			IsNew:    isNew,
			Statuses: model.Statuses(),
		},
	}); err != nil {
		logAndInternalError(w, "failed to render project form", "error", err)
	}
}

// Save persists a created or edited project: an existing id is replaced
// in place, a new one is prepended to the catalog.
// POST /admin/projects
func (h *ProjectsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminProjects) {
		return
	}

	project, err := projectFromForm(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminProjects, err.Error())
		return
	}

	projects := h.store.Projects(r.Context())

	replaced := false
	for i := range projects {
		if projects[i].ID == project.ID {
			projects[i] = project
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append([]model.Project{project}, projects...)
	}

	if err := h.store.SaveProjects(r.Context(), projects); err != nil {
		logAndInternalError(w, "failed to save projects", "error", err)
		return
	}
	h.invalidateCatalog(r)

	slog.Info("project saved", "project_id", project.ID, "title", project.Title, "created", !replaced)
	flashSuccess(w, r, h.renderer, redirectAdminProjects, "Project saved")
}

// ConfirmDelete renders the delete confirmation step.
// GET /admin/projects/{id}/delete
func (h *ProjectsHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, ok := h.store.ProjectByID(r.Context(), id)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminProjects, "Project not found")
		return
	}

	if err := h.renderer.Render(w, r, "admin/project_delete", render.TemplateData{
		Title:    "Delete " + project.Title,
		SignedIn: true,
		Data:     project,
	}); err != nil {
		logAndInternalError(w, "failed to render delete confirmation", "error", err)
	}
}

// Delete removes a project from the catalog. Leads referencing it are
// kept; they carry their own project name snapshot.
// POST /admin/projects/{id}/delete
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	projects := h.store.Projects(r.Context())

	kept := make([]model.Project, 0, len(projects))
	removed := false
	for _, p := range projects {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		flashError(w, r, h.renderer, redirectAdminProjects, "Project not found")
		return
	}

	if err := h.store.SaveProjects(r.Context(), kept); err != nil {
		logAndInternalError(w, "failed to save projects", "error", err)
		return
	}
	h.invalidateCatalog(r)

	slog.Info("project deleted", "project_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminProjects, "Project deleted")
}

// projectFromForm builds a Project from the submitted form.
func projectFromForm(r *http.Request) (model.Project, error) {
	var project model.Project

	if id := r.FormValue("id"); id != "" {
		project = model.Project{ID: id, CreatedAt: formInt64(r, "createdAt")}
		if project.CreatedAt == 0 {
			project.CreatedAt = time.Now().UnixMilli()
		}
	} else {
		project = model.NewProject()
	}

	project.Title = strings.TrimSpace(r.FormValue("title"))
	if project.Title == "" {
		return model.Project{}, fmt.Errorf("title is required")
	}
	project.Tagline = strings.TrimSpace(r.FormValue("tagline"))
	project.Description = r.FormValue("description")
	project.Location = strings.TrimSpace(r.FormValue("location"))
	project.MainImage = strings.TrimSpace(r.FormValue("mainImage"))
	project.VideoURL = strings.TrimSpace(r.FormValue("videoUrl"))

	project.CoverType = r.FormValue("coverType")
	if project.CoverType != model.CoverTypeVideo {
		project.CoverType = model.CoverTypeImage
	}

	status := r.FormValue("status")
	if !model.IsValidStatus(status) {
		status = model.StatusPreLaunch
	}
	project.Status = status

	project.Gallery = splitLines(r.FormValue("gallery"))
	project.Amenities = splitCommas(r.FormValue("amenities"))
	project.Configurations = configurationsFromForm(r)

	project.Normalize()
	return project, nil
}

// configurationsFromForm rebuilds the pricing tiers from the parallel
// form arrays. Rows without a type are treated as removed.
func configurationsFromForm(r *http.Request) []model.ProjectConfig {
	ids := r.Form["configId"]
	types := r.Form["configType"]
	sizes := r.Form["configSize"]
	prices := r.Form["configPrice"]
	descs := r.Form["configDescription"]

	configs := make([]model.ProjectConfig, 0, len(types))
	for i, typ := range types {
		typ = strings.TrimSpace(typ)
		if typ == "" {
			continue
		}

		cfg := model.ProjectConfig{Type: typ}
		if i < len(ids) && strings.TrimSpace(ids[i]) != "" {
			cfg.ID = strings.TrimSpace(ids[i])
		} else {
			cfg = model.NewProjectConfig()
			cfg.Type = typ
		}
		if i < len(sizes) {
			cfg.Size = strings.TrimSpace(sizes[i])
		}
		if i < len(prices) {
			cfg.Price = strings.TrimSpace(prices[i])
		}
		if i < len(descs) {
			cfg.Description = strings.TrimSpace(descs[i])
		}
		configs = append(configs, cfg)
	}
	return configs
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func splitCommas(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formInt64(r *http.Request, key string) int64 {
	var n int64
	_, _ = fmt.Sscanf(r.FormValue(key), "%d", &n)
	return n
}
