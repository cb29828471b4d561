// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/render"
	"github.com/azure-estates/estates-go/internal/store"
	"github.com/azure-estates/estates-go/internal/util"
)

// LeadsHandler serves the captured-lead ledger and its CSV export.
type LeadsHandler struct {
	store    *store.Store
	renderer *render.Renderer
	siteName string
}

// NewLeadsHandler creates a LeadsHandler.
func NewLeadsHandler(st *store.Store, renderer *render.Renderer, siteName string) *LeadsHandler {
	return &LeadsHandler{store: st, renderer: renderer, siteName: siteName}
}

// LeadListData is the template payload for the leads page.
type LeadListData struct {
	Leads []model.Lead
}

// List renders all captured leads, most recent first.
// GET /admin/leads
func (h *LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	leads := h.store.Leads(r.Context())

	if err := h.renderer.Render(w, r, "admin/leads", render.TemplateData{
		Title:    "Signature Ledger",
		SignedIn: true,
		Data:     LeadListData{Leads: leads},
	}); err != nil {
		logAndInternalError(w, "failed to render leads", "error", err)
	}
}

// ExportCSV downloads the full ledger as CSV. An empty ledger yields a
// notice instead of a zero-row file.
// GET /admin/leads/export
func (h *LeadsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	leads := h.store.Leads(r.Context())
	if len(leads) == 0 {
		flashAndRedirect(w, r, h.renderer, redirectAdminLeads, "Nothing to export yet.", "info")
		return
	}

	var csvBuilder strings.Builder
	csvBuilder.WriteString(escapeCSVRow([]string{"ID", "Project", "Prospect Name", "Email", "Phone", "Date", "Message"}))
	csvBuilder.WriteString("\n")

	for _, lead := range leads {
		row := []string{
			lead.ID,
			lead.ProjectName,
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.SubmittedAt().Format("2006-01-02 15:04:05"),
			lead.Message,
		}
		csvBuilder.WriteString(escapeCSVRow(row))
		csvBuilder.WriteString("\n")
	}

	filename := fmt.Sprintf("%s_signature_ledger_%d.csv", util.Slugify(h.siteName), time.Now().UnixMilli())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(csvBuilder.String()))

	slog.Info("leads exported", "count", len(leads))
}

// escapeCSVRow escapes a row of CSV values.
func escapeCSVRow(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		// Escape double quotes by doubling them
		v = strings.ReplaceAll(v, "\"", "\"\"")
		// Wrap in quotes if contains comma, newline, or quotes
		if strings.ContainsAny(v, ",\"\n\r") {
			v = "\"" + v + "\""
		}
		escaped[i] = v
	}
	return strings.Join(escaped, ",")
}
