// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/azure-estates/estates-go/internal/model"
)

// Storage keys. The names are carried over from the original catalog so a
// dump of one deployment reads back into another.
const (
	keyProjects = "azure_estates_projects"
	keyLeads    = "azure_estates_leads"
	keyAuth     = "azure_estates_auth"
	keyEnquired = "azure_estates_enquired"
	keyEvents   = "azure_estates_events"
)

// maxEvents caps the persisted application event log.
const maxEvents = 200

// Store is the single logical data store shared by every view of the
// application. All operations are synchronous; read-modify-write
// operations are serialized so only one mutation is in flight at a time.
type Store struct {
	backend Backend
	mu      sync.Mutex
}

// New wraps a Backend in a Store.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// getJSON reads and decodes the value under key into out. A missing key
// returns false with no error. A value that does not decode is treated
// the same as an absent key: callers fall back to their defaults, a
// warning is logged, and the corrupt value stays in place until the next
// successful write replaces it.
func (s *Store) getJSON(ctx context.Context, key string, out any, logCorrupt bool) (bool, error) {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		if logCorrupt {
			slog.Warn("malformed persisted value, falling back to defaults", "key", key, "error", err)
		}
		return false, nil
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, key, data)
}

// Projects returns the persisted catalog, or the built-in seed catalog if
// none has been persisted yet. It never fails: backend errors degrade to
// the seed catalog with a logged warning.
func (s *Store) Projects(ctx context.Context) []model.Project {
	var projects []model.Project
	ok, err := s.getJSON(ctx, keyProjects, &projects, true)
	if err != nil {
		slog.Warn("reading projects failed, serving seed catalog", "error", err)
		return SeedCatalog()
	}
	if !ok {
		return SeedCatalog()
	}
	for i := range projects {
		projects[i].Normalize()
	}
	return projects
}

// SaveProjects replaces the entire projects collection in a single write.
func (s *Store) SaveProjects(ctx context.Context, projects []model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range projects {
		projects[i].Normalize()
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return s.setJSON(ctx, keyProjects, projects)
}

// ProjectByID returns the project with the given id from the catalog.
func (s *Store) ProjectByID(ctx context.Context, id string) (model.Project, bool) {
	for _, p := range s.Projects(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// Leads returns persisted leads, most-recent-first, or an empty slice.
func (s *Store) Leads(ctx context.Context) []model.Lead {
	var leads []model.Lead
	if ok, err := s.getJSON(ctx, keyLeads, &leads, true); err != nil || !ok {
		return []model.Lead{}
	}
	return leads
}

// AddLead inserts the lead at the head of the collection and persists.
// Leads are never deduplicated, updated, or deleted.
func (s *Store) AddLead(ctx context.Context, lead model.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads := append([]model.Lead{lead}, s.leadsLocked(ctx)...)
	return s.setJSON(ctx, keyLeads, leads)
}

// leadsLocked is the read half of AddLead. It must not log through the
// default logger: the event-log slog handler calls AppendEvent, which
// takes s.mu again.
func (s *Store) leadsLocked(ctx context.Context) []model.Lead {
	var leads []model.Lead
	if ok, err := s.getJSON(ctx, keyLeads, &leads, false); err != nil || !ok {
		return []model.Lead{}
	}
	return leads
}

// Auth returns the persisted auth state, or the signed-out default.
func (s *Store) Auth(ctx context.Context) model.AuthState {
	var auth model.AuthState
	if ok, err := s.getJSON(ctx, keyAuth, &auth, true); err != nil || !ok {
		return model.SignedOut()
	}
	return auth
}

// SetAuth replaces the persisted auth state.
func (s *Store) SetAuth(ctx context.Context, auth model.AuthState) error {
	return s.setJSON(ctx, keyAuth, auth)
}

// Enquired returns the set of project ids the visitor has unlocked.
func (s *Store) Enquired(ctx context.Context) []string {
	var enquired []string
	if ok, err := s.getJSON(ctx, keyEnquired, &enquired, true); err != nil || !ok {
		return []string{}
	}
	return enquired
}

// MarkEnquired inserts projectID into the enquired set. Idempotent: a
// second call for the same id leaves the set unchanged. The set never
// shrinks through any exposed operation.
func (s *Store) MarkEnquired(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Non-logging read, same reason as leadsLocked.
	var enquired []string
	if ok, err := s.getJSON(ctx, keyEnquired, &enquired, false); err != nil || !ok {
		enquired = []string{}
	}
	if slices.Contains(enquired, projectID) {
		return nil
	}
	return s.setJSON(ctx, keyEnquired, append(enquired, projectID))
}

// HasEnquired reports whether projectID is in the enquired set.
func (s *Store) HasEnquired(ctx context.Context, projectID string) bool {
	return slices.Contains(s.Enquired(ctx), projectID)
}

// Events returns the persisted application event log, most-recent-first.
func (s *Store) Events(ctx context.Context) []model.Event {
	var events []model.Event
	// No corrupt-value logging here: this path is reached from the slog
	// handler itself and must not feed records back into it.
	if ok, err := s.getJSON(ctx, keyEvents, &events, false); err != nil || !ok {
		return []model.Event{}
	}
	return events
}

// AppendEvent inserts the event at the head of the log, trimming it to
// the cap. Failures are returned, never logged, for the same reason.
func (s *Store) AppendEvent(ctx context.Context, event model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := append([]model.Event{event}, s.Events(ctx)...)
	if len(events) > maxEvents {
		events = events[:maxEvents]
	}
	return s.setJSON(ctx, keyEvents, events)
}

// Ping verifies the backend is reachable. A missing key is a healthy
// backend, not a failure.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.backend.Get(ctx, keyProjects); err != nil && !errors.Is(err, ErrKeyNotFound) {
		return err
	}
	return nil
}

// ResetCatalog restores the seed catalog, discarding all project edits.
// Leads, auth state, and the enquired set are untouched.
func (s *Store) ResetCatalog(ctx context.Context) error {
	return s.SaveProjects(ctx, SeedCatalog())
}
