package handler

import (
	"context"
	"net/http"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/azure-estates/estates-go/internal/render"
	"github.com/azure-estates/estates-go/internal/store"
)

// testStore creates a memory-backed store for testing.
func testStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(store.NewMemoryBackend())
}

// testSessionManager creates a session manager for testing.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

// testTemplates is a minimal template tree exercising the same layout
// wiring as the real one.
var testTemplates = fstest.MapFS{
	"layouts/base.html": &fstest.MapFile{
		Data: []byte(`{{define "base"}}<title>{{.Title}}</title>{{template "content" .}}{{end}}`),
	},
	"layouts/admin.html": &fstest.MapFile{
		Data: []byte(`{{define "adminNav"}}nav{{end}}`),
	},
	"site/home.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}home:{{len .Data.Projects}}{{end}}`),
	},
	"site/projects.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}projects:{{len .Data.Projects}}{{end}}`),
	},
	"site/services.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}services:{{len .Data}}{{end}}`),
	},
	"site/project.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}{{.Data.Project.Title}} unlocked={{.Data.Unlocked}}{{end}}`),
	},
	"admin/login.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}login{{end}}`),
	},
	"admin/recover.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}code={{.Data.Code}}{{end}}`),
	},
	"admin/dashboard.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}projects={{.Data.ProjectCount}} leads={{.Data.LeadCount}}{{end}}`),
	},
	"admin/projects.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}{{range .Data.Projects}}[{{.Title}}]{{end}}{{end}}`),
	},
	"admin/project_form.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}form:{{.Data.Project.Title}}{{end}}`),
	},
	"admin/project_delete.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}delete:{{.Data.Title}}{{end}}`),
	},
	"admin/leads.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}leads:{{len .Data.Leads}}{{end}}`),
	},
	"admin/settings.html": &fstest.MapFile{
		Data: []byte(`{{define "content"}}settings{{end}}`),
	},
}

// testRenderer creates a renderer over the test template tree.
func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()
	r, err := render.New(render.Config{
		TemplatesFS:    testTemplates,
		SessionManager: sm,
		SiteName:       "Azure Estates",
		IsDev:          true,
	})
	if err != nil {
		t.Fatalf("render.New() error = %v", err)
	}
	return r
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// requestWithSession wraps a request with session context.
func requestWithSession(sm *scs.SessionManager, r *http.Request) *http.Request {
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		return r
	}
	return r.WithContext(ctx)
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// assertRedirect checks status and Location together.
func assertRedirect(t *testing.T, rec interface {
	Result() *http.Response
}, want string) {
	t.Helper()
	res := rec.Result()
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d; want %d", res.StatusCode, http.StatusSeeOther)
	}
	if got := res.Header.Get("Location"); got != want {
		t.Errorf("Location = %q; want %q", got, want)
	}
}
