package eventlog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"wpactl/internal/ctrl"
	"wpactl/internal/eventlog"
)

func openStore(t *testing.T) *eventlog.Store {
	t.Helper()
	store, err := eventlog.Open(context.Background(), filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	events := []ctrl.Event{
		{Severity: 2, Body: "CTRL-EVENT-SCAN-STARTED"},
		{Severity: 2, Body: "CTRL-EVENT-SCAN-RESULTS"},
		{Severity: 3, Body: "CTRL-EVENT-CONNECTED - Connection to 02:00:00:00:01:00 completed"},
	}
	for i, ev := range events {
		if err := store.Append(ctx, "wlan0", ev, base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	if err := store.Append(ctx, "wlan1", ctrl.Event{Severity: 2, Body: "CTRL-EVENT-DISCONNECTED"}, base); err != nil {
		t.Fatalf("Append wlan1: %v", err)
	}

	records, err := store.Recent(ctx, "wlan0", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	// Newest first.
	if records[0].Body != events[2].Body || records[2].Body != events[0].Body {
		t.Errorf("unexpected ordering: %q ... %q", records[0].Body, records[2].Body)
	}
	if records[0].Interface != "wlan0" || records[0].Severity != 3 {
		t.Errorf("unexpected record: %+v", records[0])
	}

	all, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("Recent all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d records across interfaces, want 4", len(all))
	}

	limited, err := store.Recent(ctx, "wlan0", 2)
	if err != nil {
		t.Fatalf("Recent limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("got %d records with limit 2", len(limited))
	}
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	old := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	if err := store.Append(ctx, "wlan0", ctrl.Event{Severity: 2, Body: "old"}, old); err != nil {
		t.Fatalf("Append old: %v", err)
	}
	if err := store.Append(ctx, "wlan0", ctrl.Event{Severity: 2, Body: "recent"}, recent); err != nil {
		t.Fatalf("Append recent: %v", err)
	}

	removed, err := store.Prune(ctx, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed %d rows, want 1", removed)
	}

	records, err := store.Recent(ctx, "wlan0", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 || records[0].Body != "recent" {
		t.Fatalf("unexpected survivors: %+v", records)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.db")

	store, err := eventlog.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Append(ctx, "wlan0", ctrl.Event{Severity: 2, Body: "persisted"}, time.Now()); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err = eventlog.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	records, err := store.Recent(ctx, "wlan0", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 || records[0].Body != "persisted" {
		t.Fatalf("unexpected records after reopen: %+v", records)
	}
}

func TestSchemaMismatch(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.db")

	store, err := eventlog.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.BumpSchemaVersionForTest(ctx, 99); err != nil {
		t.Fatalf("bump schema version: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := eventlog.Open(ctx, path); !errors.Is(err, eventlog.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := eventlog.Open(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
