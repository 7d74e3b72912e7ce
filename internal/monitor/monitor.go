package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"wpactl/internal/ctrl"
	"wpactl/internal/eventlog"
	"wpactl/internal/logging"
)

// ErrAlreadyRunning indicates another monitor holds the per-interface lock.
var ErrAlreadyRunning = errors.New("monitor: another monitor is already running for this interface")

const defaultPollInterval = time.Second

const reconnectBackoff = 2 * time.Second

// Options configures a Monitor.
type Options struct {
	// Interface is the name recorded with each event.
	Interface string
	// SocketPath is the daemon control socket to attach to.
	SocketPath string
	// LocalDir is passed through to ctrl.Open.
	LocalDir string
	// Logger receives event and lifecycle output. Defaults to no-op.
	Logger *slog.Logger
	// Store, when non-nil, receives every event.
	Store *eventlog.Store
	// Handler, when non-nil, is called for every event after logging.
	Handler func(ctrl.Event)
	// PollInterval bounds each NextEvent wait. Defaults to one second.
	PollInterval time.Duration
	// LockDir holds the per-interface lock file. Empty disables locking.
	LockDir string
	// Netlink enables the kernel uevent watcher for Interface.
	Netlink bool
}

// Monitor streams events from one control socket until its context ends.
type Monitor struct {
	opts   Options
	logger *slog.Logger

	// reconnect is signalled by the netlink watcher when the interface
	// cycles; capacity one so signals coalesce.
	reconnect chan struct{}
}

// New validates options and returns a runnable Monitor.
func New(opts Options) (*Monitor, error) {
	if opts.SocketPath == "" {
		return nil, errors.New("monitor: socket path is required")
	}
	if opts.Interface == "" {
		opts.Interface = filepath.Base(opts.SocketPath)
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	return &Monitor{
		opts:      opts,
		logger:    logging.NewComponentLogger(opts.Logger, "monitor"),
		reconnect: make(chan struct{}, 1),
	}, nil
}

// Run attaches to the control socket and streams events until ctx is done.
// It reconnects with backoff when the session fails or the interface
// cycles. Run returns nil on a clean shutdown.
func (m *Monitor) Run(ctx context.Context) error {
	if m.opts.LockDir != "" {
		lockPath := filepath.Join(m.opts.LockDir, fmt.Sprintf("monitor-%s.lock", m.opts.Interface))
		if err := os.MkdirAll(m.opts.LockDir, 0o755); err != nil {
			return fmt.Errorf("monitor: create lock directory: %w", err)
		}
		lock := flock.New(lockPath)
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("monitor: acquire lock: %w", err)
		}
		if !locked {
			return ErrAlreadyRunning
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	if m.opts.Netlink {
		watcher := newIfaceWatcher(m.opts.Interface, m.logger, m.reconnect)
		if watcher != nil {
			stop := watcher.start(ctx)
			defer stop()
		}
	}

	for {
		if err := m.runSession(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			m.logger.Warn("monitor session ended, reconnecting",
				logging.Error(err),
				logging.String(logging.FieldEventType, "monitor_reconnect"),
				logging.String(logging.FieldSocket, m.opts.SocketPath))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectBackoff):
		}
	}
}

// runSession owns one open+attach+read-loop cycle.
func (m *Monitor) runSession(ctx context.Context) error {
	conn, err := ctrl.Open(ctrl.Options{
		PeerPath: m.opts.SocketPath,
		LocalDir: m.opts.LocalDir,
		Logger:   m.opts.Logger,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Attach(); err != nil {
		return err
	}
	m.logger.Info("attached to control socket",
		logging.String(logging.FieldEventType, "monitor_attached"),
		logging.String(logging.FieldInterface, m.opts.Interface),
		logging.String(logging.FieldSocket, m.opts.SocketPath))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.reconnect:
			return errors.New("interface cycled")
		default:
		}

		ev, err := conn.NextEvent(m.opts.PollInterval)
		if errors.Is(err, ctrl.ErrTimeout) {
			continue
		}
		if err != nil {
			return err
		}
		m.handleEvent(ctx, ev)
	}
}

func (m *Monitor) handleEvent(ctx context.Context, ev ctrl.Event) {
	m.logger.Info("control event",
		logging.String(logging.FieldEventType, "ctrl_event"),
		logging.String(logging.FieldInterface, m.opts.Interface),
		logging.Int("severity", ev.Severity),
		logging.String("body", ev.Body))

	if m.opts.Store != nil {
		if err := m.opts.Store.Append(ctx, m.opts.Interface, ev, time.Now()); err != nil {
			m.logger.Warn("failed to record event",
				logging.Error(err),
				logging.String(logging.FieldEventType, "eventlog_append_failed"),
				logging.String(logging.FieldErrorHint, "check the event database path and permissions"),
				logging.String(logging.FieldImpact, "event not persisted"))
		}
	}
	if m.opts.Handler != nil {
		m.opts.Handler(ev)
	}
}
