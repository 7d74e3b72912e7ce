package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"syscall"
	"time"

	"wpactl/internal/config"
	"wpactl/internal/ctrl"
	"wpactl/internal/logging"
	"wpactl/internal/wpa"
)

type commandContext struct {
	configFlag  *string
	ifaceFlag   *string
	ctrlDirFlag *string
	socketFlag  *string
	timeoutFlag *time.Duration

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, ifaceFlag, ctrlDirFlag, socketFlag *string, timeoutFlag *time.Duration) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		ifaceFlag:   ifaceFlag,
		ctrlDirFlag: ctrlDirFlag,
		socketFlag:  socketFlag,
		timeoutFlag: timeoutFlag,
	}
}

// ensureConfig loads the config file once and applies flag overrides.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.ifaceFlag != nil && strings.TrimSpace(*c.ifaceFlag) != "" {
			cfg.Control.Interface = strings.TrimSpace(*c.ifaceFlag)
		}
		if c.ctrlDirFlag != nil && strings.TrimSpace(*c.ctrlDirFlag) != "" {
			cfg.Control.CtrlDir = strings.TrimSpace(*c.ctrlDirFlag)
		}
		if c.timeoutFlag != nil && *c.timeoutFlag > 0 {
			cfg.Control.RequestTimeoutSeconds = int(c.timeoutFlag.Seconds())
			if cfg.Control.RequestTimeoutSeconds == 0 {
				cfg.Control.RequestTimeoutSeconds = 1
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// socketPath resolves the daemon control socket: an explicit --socket wins,
// otherwise the configured control directory and interface are joined.
func (c *commandContext) socketPath() (string, error) {
	if c.socketFlag != nil && strings.TrimSpace(*c.socketFlag) != "" {
		return strings.TrimSpace(*c.socketFlag), nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.SocketPath()
}

func (c *commandContext) requestTimeout() time.Duration {
	if c.timeoutFlag != nil && *c.timeoutFlag > 0 {
		return *c.timeoutFlag
	}
	if cfg, err := c.ensureConfig(); err == nil {
		return cfg.RequestTimeout()
	}
	return ctrl.DefaultRequestTimeout
}

// openConn opens a control session using the resolved socket and config.
func (c *commandContext) openConn() (*ctrl.Conn, error) {
	socket, err := c.socketPath()
	if err != nil {
		return nil, err
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	conn, err := ctrl.Open(ctrl.Options{
		PeerPath:       socket,
		LocalDir:       cfg.Control.LocalDir,
		RequestTimeout: c.requestTimeout(),
		Logger:         logging.NewNop(),
	})
	if err != nil {
		return nil, wrapConnectError(err, socket)
	}
	return conn, nil
}

// withConn runs fn against a freshly opened control session.
func (c *commandContext) withConn(fn func(*ctrl.Conn) error) error {
	conn, err := c.openConn()
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

// withClient runs fn against the typed command client.
func (c *commandContext) withClient(fn func(*wpa.Client) error) error {
	return c.withConn(func(conn *ctrl.Conn) error {
		return fn(wpa.NewClient(conn))
	})
}

func wrapConnectError(err error, socket string) error {
	var connErr *ctrl.ConnectError
	if !errors.As(err, &connErr) {
		return err
	}
	switch {
	case errors.Is(err, syscall.ENOENT):
		return fmt.Errorf("connect to daemon: socket %s not found; is wpa_supplicant running with a control interface? (try `wpactl interfaces`)", socket)
	case errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM):
		return fmt.Errorf("connect to daemon: permission denied on %s; control sockets usually require root or membership in the daemon's ctrl_interface group", socket)
	default:
		return err
	}
}
