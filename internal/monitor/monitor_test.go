package monitor_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"wpactl/internal/ctrl"
	"wpactl/internal/eventlog"
	"wpactl/internal/monitor"
	"wpactl/internal/testsupport"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestMonitorDeliversEvents(t *testing.T) {
	fake := testsupport.NewFakeSupplicant(t)

	var mu sync.Mutex
	var seen []ctrl.Event
	m, err := monitor.New(monitor.Options{
		Interface:  "wlan0",
		SocketPath: fake.Path(),
		LocalDir:   t.TempDir(),
		Handler: func(ev ctrl.Event) {
			mu.Lock()
			seen = append(seen, ev)
			mu.Unlock()
		},
		PollInterval: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	waitFor(t, 2*time.Second, func() bool { return fake.AttachedCount() == 1 })

	fake.Push("<2>CTRL-EVENT-SCAN-STARTED")
	fake.Push("<2>CTRL-EVENT-SCAN-RESULTS")

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if seen[0].Body != "CTRL-EVENT-SCAN-STARTED" || seen[1].Body != "CTRL-EVENT-SCAN-RESULTS" {
		t.Fatalf("unexpected events: %+v", seen)
	}
}

func TestMonitorRecordsToStore(t *testing.T) {
	fake := testsupport.NewFakeSupplicant(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := eventlog.Open(ctx, filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	m, err := monitor.New(monitor.Options{
		Interface:    "wlan0",
		SocketPath:   fake.Path(),
		LocalDir:     t.TempDir(),
		Store:        store,
		PollInterval: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	waitFor(t, 2*time.Second, func() bool { return fake.AttachedCount() == 1 })
	fake.Push("<3>CTRL-EVENT-CONNECTED - Connection to 02:00:00:00:01:00 completed")

	waitFor(t, 2*time.Second, func() bool {
		records, err := store.Recent(ctx, "wlan0", 10)
		return err == nil && len(records) == 1
	})

	records, err := store.Recent(ctx, "wlan0", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if records[0].Severity != 3 || records[0].Interface != "wlan0" {
		t.Fatalf("unexpected record: %+v", records[0])
	}

	cancel()
	<-done
}

func TestMonitorLockExcludesSecondInstance(t *testing.T) {
	fake := testsupport.NewFakeSupplicant(t)
	lockDir := t.TempDir()

	opts := monitor.Options{
		Interface:    "wlan0",
		SocketPath:   fake.Path(),
		LocalDir:     t.TempDir(),
		PollInterval: 50 * time.Millisecond,
		LockDir:      lockDir,
	}

	first, err := monitor.New(opts)
	if err != nil {
		t.Fatalf("New first: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- first.Run(ctx) }()

	waitFor(t, 2*time.Second, func() bool { return fake.AttachedCount() == 1 })

	second, err := monitor.New(opts)
	if err != nil {
		t.Fatalf("New second: %v", err)
	}
	if err := second.Run(context.Background()); !errors.Is(err, monitor.ErrAlreadyRunning) {
		t.Fatalf("second Run = %v, want ErrAlreadyRunning", err)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("first Run: %v", err)
	}
}

func TestMonitorRequiresSocketPath(t *testing.T) {
	if _, err := monitor.New(monitor.Options{}); err == nil {
		t.Fatal("expected error for missing socket path")
	}
}
