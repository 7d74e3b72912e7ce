package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateControl(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateEventLog()
}

func (c *Config) validateControl() error {
	if strings.ContainsRune(c.Control.Interface, '/') {
		return fmt.Errorf("control.interface must be a bare interface name, got %q", c.Control.Interface)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateEventLog() error {
	if c.EventLog.Enabled && strings.TrimSpace(c.EventLog.Path) == "" {
		return fmt.Errorf("event_log.path is required when event_log.enabled is true")
	}
	return nil
}
