package wpa_test

import (
	"net"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"wpactl/internal/wpa"
)

func TestInterfaces(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"wlan1", "wlan0"} {
		path := filepath.Join(dir, name)
		conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: path, Net: "unixgram"})
		if err != nil {
			t.Fatalf("listen %s: %v", name, err)
		}
		t.Cleanup(func() {
			_ = conn.Close()
			_ = os.Remove(path)
		})
	}
	// Non-socket entries must be ignored.
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	names, err := wpa.Interfaces(dir)
	if err != nil {
		t.Fatalf("Interfaces: %v", err)
	}
	if want := []string{"wlan0", "wlan1"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("Interfaces = %v, want %v", names, want)
	}
}

func TestInterfacesMissingDir(t *testing.T) {
	if _, err := wpa.Interfaces(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing control directory")
	}
}
