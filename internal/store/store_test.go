// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/azure-estates/estates-go/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(NewMemoryBackend())
}

func TestProjectsSeedFallback(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	projects := s.Projects(ctx)
	if len(projects) == 0 {
		t.Fatal("Projects() should serve the seed catalog when nothing is persisted")
	}
	if projects[0].Title != "The Ivory Waterfront" {
		t.Errorf("seed project title = %q; want The Ivory Waterfront", projects[0].Title)
	}
	if projects[0].Configurations == nil {
		t.Error("seed project configurations must not be nil")
	}
}

func TestSaveProjectsRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	ps := []model.Project{
		{ID: "a", Title: "Alpha Residences", Status: model.StatusPreLaunch},
		{ID: "b", Title: "Beta Towers", Status: model.StatusReadyToMove},
	}
	if err := s.SaveProjects(ctx, ps); err != nil {
		t.Fatalf("SaveProjects() error = %v", err)
	}

	got := s.Projects(ctx)
	if len(got) != 2 {
		t.Fatalf("Projects() returned %d projects; want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("Projects() order = [%s %s]; want [a b]", got[0].ID, got[1].ID)
	}
	if got[0].Configurations == nil || got[0].Gallery == nil || got[0].Amenities == nil {
		t.Error("persisted projects must round-trip with non-nil slices")
	}
}

func TestSaveProjectsEmptyIsNotSeed(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveProjects(ctx, []model.Project{}); err != nil {
		t.Fatalf("SaveProjects() error = %v", err)
	}
	if got := s.Projects(ctx); len(got) != 0 {
		t.Errorf("Projects() after saving empty catalog = %d projects; want 0", len(got))
	}
}

func TestAddLeadHeadInsert(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if got := s.Leads(ctx); len(got) != 0 {
		t.Fatalf("Leads() on empty store = %d; want 0", len(got))
	}

	first := model.Lead{ID: "l1", ProjectID: "1", Name: "First"}
	second := model.Lead{ID: "l2", ProjectID: "1", Name: "Second"}
	if err := s.AddLead(ctx, first); err != nil {
		t.Fatalf("AddLead() error = %v", err)
	}
	if err := s.AddLead(ctx, second); err != nil {
		t.Fatalf("AddLead() error = %v", err)
	}

	leads := s.Leads(ctx)
	if len(leads) != 2 {
		t.Fatalf("Leads() returned %d; want 2", len(leads))
	}
	if leads[0].ID != "l2" {
		t.Errorf("most recent lead should be at index 0, got %q", leads[0].ID)
	}
}

func TestAddLeadDoesNotDeduplicate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	lead := model.Lead{ID: "l1", ProjectID: "1", Email: "same@x.com"}
	_ = s.AddLead(ctx, lead)
	_ = s.AddLead(ctx, lead)

	if got := len(s.Leads(ctx)); got != 2 {
		t.Errorf("Leads() after duplicate insert = %d; want 2", got)
	}
}

func TestAuthDefaultAndRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	auth := s.Auth(ctx)
	if auth.IsAuthenticated || auth.Username != "" {
		t.Errorf("default auth = %+v; want signed-out", auth)
	}

	if err := s.SetAuth(ctx, model.SignedIn()); err != nil {
		t.Fatalf("SetAuth() error = %v", err)
	}
	auth = s.Auth(ctx)
	if !auth.IsAuthenticated || auth.Username != model.AdvisorDisplayName {
		t.Errorf("auth after sign-in = %+v", auth)
	}

	if err := s.SetAuth(ctx, model.SignedOut()); err != nil {
		t.Fatalf("SetAuth() error = %v", err)
	}
	if s.Auth(ctx).IsAuthenticated {
		t.Error("auth should be reset after sign-out")
	}
}

func TestMarkEnquiredIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if s.HasEnquired(ctx, "1") {
		t.Fatal("HasEnquired() = true before any submission")
	}

	if err := s.MarkEnquired(ctx, "1"); err != nil {
		t.Fatalf("MarkEnquired() error = %v", err)
	}
	if err := s.MarkEnquired(ctx, "1"); err != nil {
		t.Fatalf("MarkEnquired() second call error = %v", err)
	}

	enquired := s.Enquired(ctx)
	if len(enquired) != 1 || enquired[0] != "1" {
		t.Errorf("Enquired() = %v; want [1]", enquired)
	}
	if !s.HasEnquired(ctx, "1") {
		t.Error("HasEnquired() = false after MarkEnquired")
	}
	if s.HasEnquired(ctx, "2") {
		t.Error("HasEnquired() leaked across project ids")
	}
}

func TestMalformedValueFallsBackToDefaults(t *testing.T) {
	backend := NewMemoryBackend()
	s := New(backend)
	ctx := context.Background()

	_ = backend.Set(ctx, keyProjects, []byte("{not json"))
	_ = backend.Set(ctx, keyLeads, []byte("also not json"))
	_ = backend.Set(ctx, keyAuth, []byte("[]garbage"))
	_ = backend.Set(ctx, keyEnquired, []byte("{{"))

	if got := s.Projects(ctx); len(got) == 0 || got[0].ID != "1" {
		t.Error("malformed projects value should fall back to the seed catalog")
	}
	if got := s.Leads(ctx); len(got) != 0 {
		t.Error("malformed leads value should fall back to empty")
	}
	if s.Auth(ctx).IsAuthenticated {
		t.Error("malformed auth value should fall back to signed-out")
	}
	if got := s.Enquired(ctx); len(got) != 0 {
		t.Error("malformed enquired value should fall back to empty")
	}
}

// mirroringHandler feeds records back into the store the way the
// application's event-log handler does.
type mirroringHandler struct {
	slog.Handler
	store *Store
}

func (h *mirroringHandler) Handle(ctx context.Context, r slog.Record) error {
	_ = h.store.AppendEvent(ctx, model.Event{
		Level:     r.Level.String(),
		Message:   r.Message,
		Timestamp: time.Now().UnixMilli(),
	})
	return h.Handler.Handle(ctx, r)
}

// Writes over a corrupt persisted value must complete even when the
// default logger re-enters the store.
func TestWriteOnCorruptValueDoesNotDeadlock(t *testing.T) {
	backend := NewMemoryBackend()
	s := New(backend)
	ctx := context.Background()

	_ = backend.Set(ctx, keyLeads, []byte("{not json"))
	_ = backend.Set(ctx, keyEnquired, []byte("{not json"))

	prev := slog.Default()
	defer slog.SetDefault(prev)
	slog.SetDefault(slog.New(&mirroringHandler{
		Handler: slog.NewTextHandler(io.Discard, nil),
		store:   s,
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := s.AddLead(ctx, model.Lead{ID: "l1", Name: "Aria"}); err != nil {
			t.Errorf("AddLead() error = %v", err)
		}
		if err := s.MarkEnquired(ctx, "p1"); err != nil {
			t.Errorf("MarkEnquired() error = %v", err)
		}
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("write over a corrupt persisted value did not complete")
	}

	if got := s.Leads(ctx); len(got) != 1 || got[0].ID != "l1" {
		t.Errorf("Leads() after recovery = %+v; want the one added lead", got)
	}
	if !s.HasEnquired(ctx, "p1") {
		t.Error("HasEnquired(p1) = false after recovery")
	}
}

func TestDeleteProjectKeepsLeads(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	ps := []model.Project{{ID: "a", Title: "Alpha"}, {ID: "b", Title: "Beta"}}
	_ = s.SaveProjects(ctx, ps)
	_ = s.AddLead(ctx, model.Lead{ID: "l1", ProjectID: "a", ProjectName: "Alpha"})

	// Delete by full-collection replacement, as the admin panel does.
	var kept []model.Project
	for _, p := range s.Projects(ctx) {
		if p.ID != "a" {
			kept = append(kept, p)
		}
	}
	_ = s.SaveProjects(ctx, kept)

	if _, ok := s.ProjectByID(ctx, "a"); ok {
		t.Error("project a should be gone after deletion")
	}
	leads := s.Leads(ctx)
	if len(leads) != 1 || leads[0].ProjectID != "a" {
		t.Error("leads referencing a deleted project must be unaffected")
	}
}

func TestEventLogCapped(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < maxEvents+10; i++ {
		_ = s.AppendEvent(ctx, model.Event{Level: model.EventLevelWarning, Message: "w"})
	}
	if got := len(s.Events(ctx)); got != maxEvents {
		t.Errorf("Events() length = %d; want %d", got, maxEvents)
	}
}

func TestResetCatalog(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_ = s.SaveProjects(ctx, []model.Project{{ID: "custom", Title: "Custom"}})
	if err := s.ResetCatalog(ctx); err != nil {
		t.Fatalf("ResetCatalog() error = %v", err)
	}

	projects := s.Projects(ctx)
	if len(projects) != 1 || projects[0].ID != "1" {
		t.Errorf("ResetCatalog() should restore the seed catalog, got %d projects", len(projects))
	}
}
