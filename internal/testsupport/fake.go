package testsupport

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// FakeSupplicant is a scripted wpa_supplicant control socket. It answers
// PING, ATTACH, and DETACH out of the box, tracks attached clients, and
// lets tests script per-command reply sequences — including event frames
// sent before the reply — and push unsolicited events to attached clients.
type FakeSupplicant struct {
	t    testing.TB
	path string
	conn *net.UnixConn

	mu       sync.Mutex
	handlers map[string]func(cmd string) []string
	attached map[string]*net.UnixAddr
	commands []string

	wg sync.WaitGroup
}

// NewFakeSupplicant starts a fake daemon socket named like an interface
// socket under a temp control directory. It shuts down via t.Cleanup.
func NewFakeSupplicant(t testing.TB) *FakeSupplicant {
	t.Helper()
	return NewFakeSupplicantAt(t, filepath.Join(t.TempDir(), "wlan0"))
}

// NewFakeSupplicantAt starts the fake daemon on an explicit socket path.
func NewFakeSupplicantAt(t testing.TB, path string) *FakeSupplicant {
	t.Helper()

	addr := &net.UnixAddr{Name: path, Net: "unixgram"}
	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		t.Fatalf("listen fake supplicant: %v", err)
	}

	f := &FakeSupplicant{
		t:        t,
		path:     path,
		conn:     conn,
		handlers: make(map[string]func(cmd string) []string),
		attached: make(map[string]*net.UnixAddr),
	}
	f.wg.Add(1)
	go f.serve()
	t.Cleanup(f.Close)
	return f
}

// Path returns the daemon socket path clients should connect to.
func (f *FakeSupplicant) Path() string { return f.path }

// Handle scripts the datagrams sent back for a command verb, in order. The
// last entry is normally the reply; earlier entries can be event frames to
// exercise interleaving.
func (f *FakeSupplicant) Handle(verb string, datagrams ...string) {
	f.HandleFunc(verb, func(string) []string { return datagrams })
}

// HandleFunc scripts a dynamic handler for a command verb. Returning nil
// sends nothing, which is how tests simulate a peer that never replies.
func (f *FakeSupplicant) HandleFunc(verb string, fn func(cmd string) []string) {
	f.mu.Lock()
	f.handlers[verb] = fn
	f.mu.Unlock()
}

// Silence makes the fake swallow a command without replying.
func (f *FakeSupplicant) Silence(verb string) {
	f.Handle(verb)
}

// Commands returns every command received so far, in arrival order.
func (f *FakeSupplicant) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

// AttachedCount reports how many clients are currently attached.
func (f *FakeSupplicant) AttachedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.attached)
}

// Push sends a raw frame to every attached client.
func (f *FakeSupplicant) Push(frame string) {
	f.mu.Lock()
	targets := make([]*net.UnixAddr, 0, len(f.attached))
	for _, addr := range f.attached {
		targets = append(targets, addr)
	}
	f.mu.Unlock()

	for _, addr := range targets {
		if _, err := f.conn.WriteToUnix([]byte(frame), addr); err != nil {
			f.t.Logf("fake supplicant push to %s: %v", addr.Name, err)
		}
	}
}

// Close stops the fake and removes its socket file. Safe to call twice.
func (f *FakeSupplicant) Close() {
	_ = f.conn.Close()
	f.wg.Wait()
	_ = os.Remove(f.path)
}

func (f *FakeSupplicant) serve() {
	defer f.wg.Done()
	buf := make([]byte, 10240)
	for {
		n, addr, err := f.conn.ReadFromUnix(buf)
		if err != nil {
			return
		}
		cmd := string(buf[:n])
		for _, frame := range f.dispatch(cmd, addr) {
			if _, err := f.conn.WriteToUnix([]byte(frame), addr); err != nil {
				f.t.Logf("fake supplicant reply to %s: %v", addr.Name, err)
			}
		}
	}
}

func (f *FakeSupplicant) dispatch(cmd string, addr *net.UnixAddr) []string {
	verb := cmd
	if i := strings.IndexByte(cmd, ' '); i > 0 {
		verb = cmd[:i]
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.commands = append(f.commands, cmd)

	if fn, ok := f.handlers[verb]; ok {
		return fn(cmd)
	}

	switch verb {
	case "PING":
		return []string{"PONG\n"}
	case "ATTACH":
		f.attached[addr.Name] = addr
		return []string{"OK\n"}
	case "DETACH":
		delete(f.attached, addr.Name)
		return []string{"OK\n"}
	default:
		return []string{"UNKNOWN COMMAND\n"}
	}
}
