package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeControl(); err != nil {
		return err
	}
	if err := c.normalizeEventLog(); err != nil {
		return err
	}
	if err := c.normalizeMonitor(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeControl() error {
	c.Control.CtrlDir = strings.TrimSpace(c.Control.CtrlDir)
	if c.Control.CtrlDir == "" {
		c.Control.CtrlDir = defaultCtrlDir
	}
	c.Control.Interface = strings.TrimSpace(c.Control.Interface)

	var err error
	if c.Control.LocalDir, err = expandPath(c.Control.LocalDir); err != nil {
		return fmt.Errorf("control.local_dir: %w", err)
	}
	if c.Control.RequestTimeoutSeconds <= 0 {
		c.Control.RequestTimeoutSeconds = defaultRequestTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeEventLog() error {
	var err error
	if c.EventLog.Path, err = expandPath(c.EventLog.Path); err != nil {
		return fmt.Errorf("event_log.path: %w", err)
	}
	if c.EventLog.RetentionDays <= 0 {
		c.EventLog.RetentionDays = defaultEventLogRetentionDays
	}
	return nil
}

func (c *Config) normalizeMonitor() error {
	var err error
	if c.Monitor.LockDir, err = expandPath(c.Monitor.LockDir); err != nil {
		return fmt.Errorf("monitor.lock_dir: %w", err)
	}
	if c.Monitor.PollIntervalSeconds <= 0 {
		c.Monitor.PollIntervalSeconds = defaultMonitorPollSeconds
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if dir, err := expandPath(c.Logging.Dir); err == nil {
		c.Logging.Dir = dir
	}
}
