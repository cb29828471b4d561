// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"time"

	"github.com/azure-estates/estates-go/internal/model"
)

// SeedCatalog returns the fixed built-in project catalog served until an
// admin persists their own. Each call returns a fresh copy.
func SeedCatalog() []model.Project {
	return []model.Project{
		{
			ID:          "1",
			Title:       "The Ivory Waterfront",
			Tagline:     "A Landmark of Pure Sovereignty",
			Description: "A masterpiece of architectural brilliance perched on the edge of the blue. Signature Waterfront offers a life defined by elegance, privacy, and panoramic coastal views.",
			Location:    "Billionaire's Row, Monaco",
			MainImage:   "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?auto=format&fit=crop&w=1200&q=80",
			CoverType:   model.CoverTypeImage,
			VideoURL:    "https://www.w3schools.com/html/mov_bbb.mp4",
			Gallery: []string{
				"https://images.unsplash.com/photo-1600566753190-17f0bb2a6c3e?auto=format&fit=crop&w=800&q=80",
				"https://images.unsplash.com/photo-1600607687920-4e2a09cf159d?auto=format&fit=crop&w=800&q=80",
			},
			Status: model.StatusReadyToMove,
			Configurations: []model.ProjectConfig{
				{ID: "c1", Type: "Garden Villa", Size: "4,500 sq.ft", Price: "$8,500,000", Description: "Private Infinity Garden"},
				{ID: "c2", Type: "Sky Mansion", Size: "8,200 sq.ft", Price: "$18,000,000", Description: "360 Degree Ocean Views"},
			},
			Amenities: []string{"Private Yacht Berth", "24/7 Butler Service", "Molecular Kitchen", "Cryotherapy Spa"},
			CreatedAt: time.Now().UnixMilli(),
		},
	}
}
