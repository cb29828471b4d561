// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/azure-estates/estates-go/internal/copywriter"
)

// AssistHandler exposes the AI copywriter to the admin project form.
type AssistHandler struct {
	writer *copywriter.Writer
}

// NewAssistHandler creates an AssistHandler.
func NewAssistHandler(writer *copywriter.Writer) *AssistHandler {
	return &AssistHandler{writer: writer}
}

// Tagline generates a marketing tagline for the given project title and
// location. Always returns a usable tagline, falling back to stock copy
// when generation is unavailable.
// POST /admin/assist/tagline
func (h *AssistHandler) Tagline(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	location := strings.TrimSpace(r.FormValue("location"))

	tagline := h.writer.Tagline(r.Context(), title, location)
	writeJSONSuccess(w, map[string]any{"tagline": tagline})
}
