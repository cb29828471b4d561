package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/azure-estates/estates-go/internal/cache"
	"github.com/azure-estates/estates-go/internal/gate"
	"github.com/azure-estates/estates-go/internal/inquiry"
	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/store"
)

func testFrontendHandler(t *testing.T) (*FrontendHandler, *store.Store, *scs.SessionManager) {
	t.Helper()

	st := testStore(t)
	sm := testSessionManager(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := inquiry.New(st, log, inquiry.WithDelay(0))
	catalog := cache.NewTypedCache[[]model.Project](cache.NewSimpleMemoryCache(time.Minute), time.Minute)

	h := NewFrontendHandler(st, testRenderer(t, sm), gate.New(st), svc, catalog)
	return h, st, sm
}

func seededProjectID(t *testing.T, st *store.Store) string {
	t.Helper()
	projects := st.Projects(context.Background())
	if len(projects) == 0 {
		t.Fatal("seed catalog is empty")
	}
	return projects[0].ID
}

func TestHomeRendersCatalog(t *testing.T) {
	h, _, sm := testFrontendHandler(t)

	rec := httptest.NewRecorder()
	h.Home(rec, requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/", nil)))

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "home:") {
		t.Errorf("body = %q; want home page content", rec.Body.String())
	}
}

func TestServicesPage(t *testing.T) {
	h, _, sm := testFrontendHandler(t)

	rec := httptest.NewRecorder()
	h.Services(rec, requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/services", nil)))

	assertStatus(t, rec.Code, http.StatusOK)
	if got := rec.Body.String(); !strings.Contains(got, "services:3") {
		t.Errorf("body = %q; want all three advisory offerings", got)
	}
}

func TestProjectsStatusFilter(t *testing.T) {
	h, st, sm := testFrontendHandler(t)
	ctx := context.Background()

	ready := model.NewProject()
	ready.Title = "Ready Tower"
	ready.Status = model.StatusReadyToMove
	launching := model.NewProject()
	launching.Title = "Launching Soon"
	launching.Status = model.StatusPreLaunch
	if err := st.SaveProjects(ctx, []model.Project{ready, launching}); err != nil {
		t.Fatalf("SaveProjects() error = %v", err)
	}

	rec := httptest.NewRecorder()
	h.Projects(rec, requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/projects?status="+url.QueryEscape(model.StatusReadyToMove), nil)))

	assertStatus(t, rec.Code, http.StatusOK)
	if got := rec.Body.String(); !strings.Contains(got, "projects:1") {
		t.Errorf("body = %q; want exactly one project after filtering", got)
	}
}

func TestProjectDetailLockedByDefault(t *testing.T) {
	h, st, sm := testFrontendHandler(t)
	id := seededProjectID(t, st)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+id, nil)
	req = requestWithSession(sm, requestWithURLParams(req, map[string]string{"id": id}))

	rec := httptest.NewRecorder()
	h.ProjectDetail(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "unlocked=false") {
		t.Errorf("body = %q; want locked detail view", rec.Body.String())
	}
}

func TestProjectDetailUnknownID(t *testing.T) {
	h, _, _ := testFrontendHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/projects/nope", nil)
	req = requestWithURLParams(req, map[string]string{"id": "nope"})

	rec := httptest.NewRecorder()
	h.ProjectDetail(rec, req)

	assertStatus(t, rec.Code, http.StatusNotFound)
}

func TestEnquireUnlocksProject(t *testing.T) {
	h, st, sm := testFrontendHandler(t)
	id := seededProjectID(t, st)

	form := url.Values{
		"name":    {"Ava Laurent"},
		"email":   {"ava@example.com"},
		"phone":   {"+971500000000"},
		"message": {"Please share the brochure."},
	}
	req := httptest.NewRequest(http.MethodPost, "/projects/"+id+"/enquire", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = requestWithURLParams(req, map[string]string{"id": id})
	req = requestWithSession(sm, req)

	rec := httptest.NewRecorder()
	h.Enquire(rec, req)

	assertRedirect(t, rec, "/projects/"+id)
	if leads := st.Leads(req.Context()); len(leads) != 1 {
		t.Fatalf("stored %d leads; want 1", len(leads))
	}
	if !st.HasEnquired(req.Context(), id) {
		t.Error("project not unlocked after inquiry")
	}

	// The detail view now shows the full project.
	detailReq := httptest.NewRequest(http.MethodGet, "/projects/"+id, nil)
	detailReq = requestWithSession(sm, requestWithURLParams(detailReq, map[string]string{"id": id}))
	detailRec := httptest.NewRecorder()
	h.ProjectDetail(detailRec, detailReq)

	if !strings.Contains(detailRec.Body.String(), "unlocked=true") {
		t.Errorf("body = %q; want unlocked detail view", detailRec.Body.String())
	}
}

func TestEnquireMissingFieldsStoresNothing(t *testing.T) {
	h, st, sm := testFrontendHandler(t)
	id := seededProjectID(t, st)

	form := url.Values{"name": {""}, "email": {"ava@example.com"}, "phone": {"+971500000000"}}
	req := httptest.NewRequest(http.MethodPost, "/projects/"+id+"/enquire", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = requestWithURLParams(req, map[string]string{"id": id})
	req = requestWithSession(sm, req)

	rec := httptest.NewRecorder()
	h.Enquire(rec, req)

	assertRedirect(t, rec, "/projects/"+id)
	if leads := st.Leads(req.Context()); len(leads) != 0 {
		t.Errorf("stored %d leads after rejected submission", len(leads))
	}
	if st.HasEnquired(req.Context(), id) {
		t.Error("project unlocked by rejected submission")
	}
}

func TestEnquireUnknownProject(t *testing.T) {
	h, _, sm := testFrontendHandler(t)

	form := url.Values{
		"name":  {"Ava Laurent"},
		"email": {"ava@example.com"},
		"phone": {"+971500000000"},
	}
	req := httptest.NewRequest(http.MethodPost, "/projects/nope/enquire", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = requestWithURLParams(req, map[string]string{"id": "nope"})
	req = requestWithSession(sm, req)

	rec := httptest.NewRecorder()
	h.Enquire(rec, req)

	assertStatus(t, rec.Code, http.StatusNotFound)
}
