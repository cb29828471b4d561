// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the persisted data types of the catalog:
// projects with their pricing configurations, captured leads, and the
// single-slot admin auth state.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses
const (
	StatusPreLaunch         = "Pre-Launch"
	StatusUnderConstruction = "Under Construction"
	StatusReadyToMove       = "Ready to Move"
)

// Cover types
const (
	CoverTypeImage = "image"
	CoverTypeVideo = "video"
)

// Statuses lists the valid project statuses in display order.
func Statuses() []string {
	return []string{StatusPreLaunch, StatusUnderConstruction, StatusReadyToMove}
}

// ProjectConfig is one pricing/size tier within a project. All labels are
// free text; no numeric or currency semantics are attached to them.
type ProjectConfig struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Size        string `json:"size"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
}

// Project is a property listing. JSON field names match the persisted
// store layout, so a catalog written by one backend reads back from another.
type Project struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Tagline        string          `json:"tagline"`
	Description    string          `json:"description"`
	Location       string          `json:"location"`
	MainImage      string          `json:"mainImage"`
	CoverType      string          `json:"coverType"`
	VideoURL       string          `json:"videoUrl,omitempty"`
	Gallery        []string        `json:"gallery"`
	Status         string          `json:"status"`
	Configurations []ProjectConfig `json:"configurations"`
	Amenities      []string        `json:"amenities"`
	CreatedAt      int64           `json:"createdAt"` // milliseconds since epoch
}

// NewProject returns a default-valued project draft with a fresh id,
// ready for editing in the admin panel.
func NewProject() Project {
	return Project{
		ID:             uuid.NewString(),
		CoverType:      CoverTypeImage,
		Gallery:        []string{},
		Status:         StatusPreLaunch,
		Configurations: []ProjectConfig{},
		Amenities:      []string{},
		CreatedAt:      time.Now().UnixMilli(),
	}
}

// NewProjectConfig returns an empty pricing tier with a fresh id.
func NewProjectConfig() ProjectConfig {
	return ProjectConfig{ID: uuid.NewString()}
}

// Normalize ensures the slice fields are non-nil so persisted records
// always round-trip as JSON arrays, never null.
func (p *Project) Normalize() {
	if p.Gallery == nil {
		p.Gallery = []string{}
	}
	if p.Configurations == nil {
		p.Configurations = []ProjectConfig{}
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
}

// IsValidStatus reports whether s is one of the known project statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPreLaunch, StatusUnderConstruction, StatusReadyToMove:
		return true
	}
	return false
}
