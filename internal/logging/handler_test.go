package logging

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/store"
)

func testLogger(t *testing.T) (*slog.Logger, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryBackend())
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewEventLogHandler(inner, st)), st
}

func TestWarnAndErrorAreMirrored(t *testing.T) {
	log, st := testLogger(t)
	ctx := context.Background()

	log.Warn("catalog payload corrupt", "path", "/admin/projects")
	log.Error("csv export failed")

	events := st.Events(ctx)
	if len(events) != 2 {
		t.Fatalf("got %d events; want 2", len(events))
	}

	// Newest first.
	if events[0].Level != model.EventLevelError || events[0].Message != "csv export failed" {
		t.Errorf("events[0] = %+v", events[0])
	}
	if events[1].Level != model.EventLevelWarning || events[1].Path != "/admin/projects" {
		t.Errorf("events[1] = %+v", events[1])
	}
}

func TestInfoAndDebugAreNotMirrored(t *testing.T) {
	log, st := testLogger(t)

	log.Info("server started")
	log.Debug("cache warm")

	events := st.Events(context.Background())
	if len(events) != 0 {
		t.Errorf("got %d events; want 0", len(events))
	}
}

func TestWithAttrsKeepsMirroring(t *testing.T) {
	log, st := testLogger(t)

	log.With("component", "scheduler").Warn("job overran")

	events := st.Events(context.Background())
	if len(events) != 1 || events[0].Message != "job overran" {
		t.Errorf("events = %+v; want the derived logger's warning", events)
	}
}
