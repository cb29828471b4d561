// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/azure-estates/estates-go/internal/media"
)

// MediaHandler converts uploaded media into inline data URLs for the
// project form.
type MediaHandler struct {
	converter *media.Converter
	maxBytes  int64
}

// NewMediaHandler creates a MediaHandler.
func NewMediaHandler(converter *media.Converter, maxBytes int64) *MediaHandler {
	return &MediaHandler{converter: converter, maxBytes: maxBytes}
}

// DataURL accepts a multipart upload under the "file" field and returns
// the converted data URL as JSON. Images are re-encoded, videos pass
// through unchanged.
// POST /admin/media/dataurl
func (h *MediaHandler) DataURL(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")

	var dataURL string
	if strings.HasPrefix(contentType, "video/") {
		dataURL, err = h.converter.VideoToDataURL(file, contentType)
	} else {
		dataURL, err = h.converter.ImageToDataURL(file)
	}
	if err != nil {
		slog.Warn("media conversion failed", "filename", header.Filename, "content_type", contentType, "error", err)
		writeJSONError(w, http.StatusUnprocessableEntity, "Unsupported or corrupt media file")
		return
	}

	writeJSONSuccess(w, map[string]any{"url": dataURL})
}
