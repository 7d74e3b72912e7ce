package ctrl

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/eapache/queue"
	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"wpactl/internal/logging"
)

const (
	// bufSize matches the daemon's maximum control message size.
	bufSize = 10240

	// detachTimeout bounds the best-effort DETACH issued during Close.
	detachTimeout = time.Second

	openBindAttempts = 2
)

// DefaultRequestTimeout applies when Options.RequestTimeout is zero.
const DefaultRequestTimeout = 10 * time.Second

// Options configures a control connection.
type Options struct {
	// PeerPath is the daemon's control socket, typically
	// /var/run/wpa_supplicant/<interface>. Required.
	PeerPath string
	// LocalDir is the directory for the locally bound socket file.
	// Defaults to the system temp directory.
	LocalDir string
	// RequestTimeout is the default deadline for Request. Defaults to
	// DefaultRequestTimeout.
	RequestTimeout time.Duration
	// Logger receives debug/warn diagnostics. Defaults to a no-op logger.
	Logger *slog.Logger
}

// Conn is a control session with a wpa_supplicant / hostapd daemon.
type Conn struct {
	conn      *net.UnixConn
	localPath string
	peerPath  string
	timeout   time.Duration
	logger    *slog.Logger

	// reqMu serializes command exchanges; TryLock failure maps to ErrBusy.
	reqMu sync.Mutex

	// ioMu guards the shared receive buffer.
	ioMu sync.Mutex
	buf  []byte

	stateMu  sync.Mutex
	attached bool
	closed   bool

	evMu   sync.Mutex
	events *queue.Queue
}

// Open binds a uniquely named local datagram socket and connects it to the
// daemon's control socket. The local socket file is removed by Close.
func Open(opts Options) (*Conn, error) {
	peer := strings.TrimSpace(opts.PeerPath)
	if peer == "" {
		return nil, &ConnectError{Path: peer, Err: errors.New("peer path is empty")}
	}

	var st unix.Stat_t
	if err := unix.Stat(peer, &st); err != nil {
		return nil, &ConnectError{Path: peer, Err: fmt.Errorf("daemon socket unavailable: %w", err)}
	}
	if st.Mode&unix.S_IFMT != unix.S_IFSOCK {
		return nil, &ConnectError{Path: peer, Err: errors.New("not a socket")}
	}

	dir := opts.LocalDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return nil, &ConnectError{Path: dir, Err: fmt.Errorf("local socket directory: %w", err)}
	}

	raddr := &net.UnixAddr{Name: peer, Net: "unixgram"}
	var (
		uconn *net.UnixConn
		local string
	)
	for attempt := 0; ; attempt++ {
		local = filepath.Join(dir, localSocketName())
		laddr := &net.UnixAddr{Name: local, Net: "unixgram"}
		c, err := net.DialUnix("unixgram", laddr, raddr)
		if err == nil {
			uconn = c
			break
		}
		if attempt+1 < openBindAttempts && errors.Is(err, unix.EADDRINUSE) {
			_ = os.Remove(local)
			continue
		}
		return nil, &ConnectError{Path: peer, Err: err}
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Conn{
		conn:      uconn,
		localPath: local,
		peerPath:  peer,
		timeout:   timeout,
		logger:    logging.NewComponentLogger(logger, "ctrl"),
		buf:       make([]byte, bufSize),
		events:    queue.New(),
	}, nil
}

// localSocketName generates a collision-free socket file name. The pid keeps
// names traceable to a process; the random suffix keeps concurrent sessions
// within one process distinct.
func localSocketName() string {
	return fmt.Sprintf("wpactl-%d-%s", os.Getpid(), uuid.NewString()[:8])
}

// LocalPath returns the filesystem path of the locally bound socket.
func (c *Conn) LocalPath() string { return c.localPath }

// PeerPath returns the daemon control socket path this Conn talks to.
func (c *Conn) PeerPath() string { return c.peerPath }

// Request sends a command and waits for its reply using the connection's
// default timeout.
func (c *Conn) Request(cmd string) (string, error) {
	return c.RequestTimeout(cmd, c.timeout)
}

// RequestTimeout sends a command and waits up to timeout for the matching
// reply. Event frames arriving in between are queued for NextEvent in
// arrival order; the time spent receiving them counts against the deadline.
// The reply text is returned verbatim, trailing newline included.
//
// At most one request may be in flight per Conn; a concurrent call fails
// with ErrBusy.
func (c *Conn) RequestTimeout(cmd string, timeout time.Duration) (string, error) {
	if c.isClosed() {
		return "", ErrClosed
	}
	if !c.reqMu.TryLock() {
		return "", ErrBusy
	}
	defer c.reqMu.Unlock()
	return c.exchange(cmd, timeout)
}

// exchange runs one send/receive cycle. Callers must hold reqMu.
func (c *Conn) exchange(cmd string, timeout time.Duration) (string, error) {
	if _, err := c.conn.Write([]byte(cmd)); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return "", ErrClosed
		}
		return "", fmt.Errorf("ctrl: send %q: %w", commandVerb(cmd), err)
	}

	deadline := time.Now().Add(timeout)
	for {
		frame, err := c.recvFrame(deadline)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrDeadlineExceeded):
			return "", fmt.Errorf("%w: no reply to %q within %s", ErrTimeout, commandVerb(cmd), timeout)
		case errors.Is(err, net.ErrClosed):
			return "", ErrProtocol
		default:
			return "", fmt.Errorf("ctrl: receive reply: %w", err)
		}

		if ev, ok := Classify(frame); ok {
			c.pushEvent(ev)
			continue
		}
		return string(frame), nil
	}
}

// commandVerb trims a command down to its first word for error messages, so
// credentials in commands like SET_NETWORK never reach logs.
func commandVerb(cmd string) string {
	if i := strings.IndexByte(cmd, ' '); i > 0 {
		return cmd[:i]
	}
	return cmd
}

// recvFrame blocks until one datagram arrives or the deadline passes.
func (c *Conn) recvFrame(deadline time.Time) ([]byte, error) {
	c.ioMu.Lock()
	defer c.ioMu.Unlock()

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	n, err := c.conn.Read(c.buf)
	if err != nil {
		return nil, err
	}
	frame := make([]byte, n)
	copy(frame, c.buf[:n])
	return frame, nil
}

// Attach subscribes this connection to unsolicited event delivery. It
// returns nil without touching the wire when already attached.
func (c *Conn) Attach() error {
	if c.isClosed() {
		return ErrClosed
	}
	if c.isAttached() {
		return nil
	}
	reply, err := c.Request("ATTACH")
	if err != nil {
		return err
	}
	if !replyIsOK(reply) {
		return fmt.Errorf("ctrl: attach rejected: %q", strings.TrimSpace(reply))
	}
	c.setAttached(true)
	return nil
}

// Detach unsubscribes from event delivery. Events already queued are kept
// so callers can drain them before closing. Detaching an unattached
// connection is a no-op.
func (c *Conn) Detach() error {
	if c.isClosed() {
		return ErrClosed
	}
	if !c.isAttached() {
		return nil
	}
	reply, err := c.Request("DETACH")
	if err != nil {
		return err
	}
	if !replyIsOK(reply) {
		return fmt.Errorf("ctrl: detach rejected: %q", strings.TrimSpace(reply))
	}
	c.setAttached(false)
	return nil
}

// Attached reports whether event delivery is currently enabled.
func (c *Conn) Attached() bool { return c.isAttached() }

func replyIsOK(reply string) bool {
	return strings.TrimSpace(reply) == "OK"
}

// Pending reports the number of events queued for NextEvent without
// blocking.
func (c *Conn) Pending() int {
	c.evMu.Lock()
	defer c.evMu.Unlock()
	return c.events.Length()
}

// Readable reports whether a datagram is waiting on the socket right now.
// It never blocks, so callers running in non-blocking mode can poll instead
// of sitting in NextEvent.
func (c *Conn) Readable() (bool, error) {
	if c.isClosed() {
		return false, ErrClosed
	}
	rc, err := c.conn.SyscallConn()
	if err != nil {
		return false, err
	}
	var (
		ready   bool
		pollErr error
	)
	ctrlErr := rc.Control(func(fd uintptr) {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		for {
			n, err := unix.Poll(fds, 0)
			if err == unix.EINTR {
				continue
			}
			if err != nil {
				pollErr = err
				return
			}
			ready = n > 0 && fds[0].Revents&unix.POLLIN != 0
			return
		}
	})
	if ctrlErr != nil {
		return false, ctrlErr
	}
	return ready, pollErr
}

// NextEvent returns the oldest queued event, or blocks on the socket until
// an event arrives or timeout passes. Frames that classify as replies while
// no command is pending are stray (typically the late reply of a timed-out
// request); they are discarded with a debug log and the wait continues.
func (c *Conn) NextEvent(timeout time.Duration) (Event, error) {
	if c.isClosed() {
		return Event{}, ErrClosed
	}

	if ev, ok := c.popEvent(); ok {
		return ev, nil
	}

	deadline := time.Now().Add(timeout)
	for {
		frame, err := c.recvFrame(deadline)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrDeadlineExceeded):
			return Event{}, fmt.Errorf("%w: no event within %s", ErrTimeout, timeout)
		case errors.Is(err, net.ErrClosed):
			return Event{}, ErrClosed
		default:
			return Event{}, fmt.Errorf("ctrl: receive event: %w", err)
		}

		if ev, ok := Classify(frame); ok {
			return ev, nil
		}
		c.logger.Debug("discarding stray reply frame",
			logging.String("frame", strings.TrimSpace(string(frame))))
	}
}

func (c *Conn) pushEvent(ev Event) {
	c.evMu.Lock()
	c.events.Add(ev)
	c.evMu.Unlock()
}

func (c *Conn) popEvent() (Event, bool) {
	c.evMu.Lock()
	defer c.evMu.Unlock()
	if c.events.Length() == 0 {
		return Event{}, false
	}
	return c.events.Remove().(Event), true
}

func (c *Conn) isClosed() bool {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.closed
}

func (c *Conn) isAttached() bool {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.attached
}

func (c *Conn) setAttached(v bool) {
	c.stateMu.Lock()
	c.attached = v
	c.stateMu.Unlock()
}

// Close detaches if attached (best effort, bounded), closes the socket, and
// removes the local socket file. It is idempotent; the Conn is unusable
// afterwards.
func (c *Conn) Close() error {
	c.stateMu.Lock()
	if c.closed {
		c.stateMu.Unlock()
		return nil
	}
	attached := c.attached
	c.stateMu.Unlock()

	if attached {
		if c.reqMu.TryLock() {
			if _, err := c.exchange("DETACH", detachTimeout); err != nil {
				c.logger.Debug("detach on close failed", logging.Error(err))
			}
			c.reqMu.Unlock()
		}
	}

	c.stateMu.Lock()
	c.closed = true
	c.attached = false
	c.stateMu.Unlock()

	err := c.conn.Close()
	if removeErr := os.Remove(c.localPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
		c.logger.Warn("unable to unlink local control socket",
			logging.String("socket", c.localPath),
			logging.Error(removeErr))
		if err == nil {
			err = removeErr
		}
	}
	return err
}
