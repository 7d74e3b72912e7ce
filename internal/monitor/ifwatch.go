package monitor

import (
	"context"
	"log/slog"

	"github.com/pilebones/go-udev/netlink"

	"wpactl/internal/logging"
)

// ifaceWatcher listens for kernel uevents on the net subsystem and signals
// the monitor when the watched interface is added or removed, so a stale
// control session is torn down instead of timing out forever.
type ifaceWatcher struct {
	iface     string
	logger    *slog.Logger
	reconnect chan<- struct{}
}

func newIfaceWatcher(iface string, logger *slog.Logger, reconnect chan<- struct{}) *ifaceWatcher {
	if iface == "" {
		return nil
	}
	return &ifaceWatcher{
		iface:     iface,
		logger:    logging.NewComponentLogger(logger, "ifwatch"),
		reconnect: reconnect,
	}
}

// start connects to the udev netlink socket and begins watching. It returns
// a stop function; failure to connect is non-fatal since the monitor still
// recovers through its reconnect backoff.
func (w *ifaceWatcher) start(ctx context.Context) func() {
	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		w.logger.Warn("failed to connect to netlink socket; interface cycling will be detected by timeout only",
			logging.Error(err),
			logging.String(logging.FieldEventType, "netlink_connect_failed"),
			logging.String(logging.FieldErrorHint, "ensure the process may open netlink sockets"),
			logging.String(logging.FieldImpact, "slower recovery after interface restarts"))
		return func() {}
	}

	quit := make(chan struct{})
	go w.loop(ctx, conn, quit)

	return func() {
		close(quit)
		_ = conn.Close()
	}
}

func (w *ifaceWatcher) loop(ctx context.Context, conn *netlink.UEventConn, quit <-chan struct{}) {
	events := make(chan netlink.UEvent)
	errs := make(chan error)
	monitorQuit := conn.Monitor(events, errs, w.matcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-events:
			w.handle(uevent)
		case err := <-errs:
			w.logger.Warn("netlink watcher error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "netlink_watch_error"))
		}
	}
}

// matcher selects add/remove uevents on the net subsystem.
func (w *ifaceWatcher) matcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "net",
		},
	})
	return rules
}

func (w *ifaceWatcher) handle(uevent netlink.UEvent) {
	name := uevent.Env["INTERFACE"]
	if name == "" {
		name = uevent.Env["DEVPATH"]
	}
	if name != w.iface {
		return
	}

	w.logger.Info("watched interface cycled",
		logging.String(logging.FieldEventType, "interface_cycled"),
		logging.String(logging.FieldInterface, w.iface),
		logging.String("action", string(uevent.Action)))

	select {
	case w.reconnect <- struct{}{}:
	default:
	}
}
