package handler

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/store"
)

func testLeadsHandler(t *testing.T) (*LeadsHandler, *store.Store, *scs.SessionManager) {
	t.Helper()

	st := testStore(t)
	sm := testSessionManager(t)
	return NewLeadsHandler(st, testRenderer(t, sm), "Azure Estates"), st, sm
}

func TestLeadsList(t *testing.T) {
	h, st, sm := testLeadsHandler(t)
	ctx := context.Background()

	if err := st.AddLead(ctx, model.Lead{ID: "l1", Name: "Ava"}); err != nil {
		t.Fatalf("AddLead() error = %v", err)
	}

	req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/admin/leads", nil))
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "leads:1") {
		t.Errorf("body = %q; want one listed lead", rec.Body.String())
	}
}

func TestExportCSV(t *testing.T) {
	h, st, _ := testLeadsHandler(t)
	ctx := context.Background()

	leads := []model.Lead{
		{ID: "l1", ProjectName: "The Ivory Waterfront", Name: "Ava Laurent", Email: "ava@example.com", Phone: "+971500000000", Timestamp: 1700000000000, Message: "Brochure please"},
		{ID: "l2", ProjectName: "Marina, \"Crown\"", Name: "Noor\nKhalil", Email: "noor@example.com", Phone: "+971511111111", Timestamp: 1700000100000, Message: "Line one\nline two, with comma"},
	}
	for _, lead := range leads {
		if err := st.AddLead(ctx, lead); err != nil {
			t.Fatalf("AddLead() error = %v", err)
		}
	}

	rec := httptest.NewRecorder()
	h.ExportCSV(rec, httptest.NewRequest(http.MethodGet, "/admin/leads/export", nil))

	assertStatus(t, rec.Code, http.StatusOK)
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Content-Type = %q", got)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "azure-estates_signature_ledger_") {
		t.Errorf("Content-Disposition = %q", disposition)
	}

	// The escaping must survive a standards-compliant reader.
	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("reading exported CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("exported %d rows; want header plus 2 leads", len(records))
	}

	wantHeader := []string{"ID", "Project", "Prospect Name", "Email", "Phone", "Date", "Message"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q; want %q", i, records[0][i], col)
		}
	}

	// Leads are stored newest first.
	if records[1][1] != "Marina, \"Crown\"" {
		t.Errorf("project cell = %q; quotes and commas must round-trip", records[1][1])
	}
	if records[1][6] != "Line one\nline two, with comma" {
		t.Errorf("message cell = %q", records[1][6])
	}
	if records[2][2] != "Ava Laurent" {
		t.Errorf("name cell = %q", records[2][2])
	}
}

func TestExportCSVEmptyLedger(t *testing.T) {
	h, _, sm := testLeadsHandler(t)

	req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/admin/leads/export", nil))
	rec := httptest.NewRecorder()
	h.ExportCSV(rec, req)

	// Nothing to export: the advisor is sent back with a notice instead
	// of an empty file.
	assertRedirect(t, rec, "/admin/leads")
}

func TestEscapeCSVRow(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"plain", []string{"a", "b"}, "a,b"},
		{"embedded comma", []string{"a,b", "c"}, "\"a,b\",c"},
		{"embedded quote", []string{`say "hi"`}, `"say ""hi"""`},
		{"embedded newline", []string{"a\nb"}, "\"a\nb\""},
		{"empty fields", []string{"", ""}, ","},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeCSVRow(tt.values); got != tt.want {
				t.Errorf("escapeCSVRow(%q) = %q; want %q", tt.values, got, tt.want)
			}
		})
	}
}
