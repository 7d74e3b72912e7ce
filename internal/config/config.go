package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Control contains daemon control-socket settings.
type Control struct {
	// CtrlDir is the directory holding one control socket per managed
	// interface, e.g. /var/run/wpa_supplicant.
	CtrlDir string `toml:"ctrl_dir"`
	// Interface selects the daemon socket under CtrlDir. Empty means the
	// caller discovers one (see wpa.Interfaces).
	Interface string `toml:"interface"`
	// LocalDir is where locally bound client sockets are created.
	LocalDir string `toml:"local_dir"`
	// RequestTimeoutSeconds bounds each command/reply exchange.
	RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// EventLog contains configuration for the persistent event recorder.
type EventLog struct {
	Enabled       bool   `toml:"enabled"`
	Path          string `toml:"path"`
	RetentionDays int    `toml:"retention_days"`
}

// Monitor contains configuration for the event monitoring agent.
type Monitor struct {
	// PollIntervalSeconds is the bounded wait used per event read so the
	// monitor notices shutdown promptly.
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
	// LockDir holds the per-interface lock files that keep recorders
	// single-instance.
	LockDir string `toml:"lock_dir"`
	// Netlink enables watching kernel uevents for the monitored interface
	// so the monitor can reattach after the interface cycles.
	Netlink bool `toml:"netlink"`
}

// Config encapsulates all configuration values for wpactl.
type Config struct {
	Control  Control  `toml:"control"`
	Logging  Logging  `toml:"logging"`
	EventLog EventLog `toml:"event_log"`
	Monitor  Monitor  `toml:"monitor"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/wpactl/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The bool result
// reports whether a config file existed at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// SocketPath returns the daemon control socket for the configured interface,
// or an error when no interface is set.
func (c *Config) SocketPath() (string, error) {
	iface := strings.TrimSpace(c.Control.Interface)
	if iface == "" {
		return "", errors.New("no interface configured; set control.interface or pass --interface")
	}
	return filepath.Join(c.Control.CtrlDir, iface), nil
}

// RequestTimeout returns the configured per-request deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Control.RequestTimeoutSeconds) * time.Second
}

// MonitorPollInterval returns the bounded per-read wait for the monitor.
func (c *Config) MonitorPollInterval() time.Duration {
	return time.Duration(c.Monitor.PollIntervalSeconds) * time.Second
}

// EnsureDirectories creates the directories wpactl writes to.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Logging.Dir, c.Monitor.LockDir}
	if c.EventLog.Enabled {
		dirs = append(dirs, filepath.Dir(c.EventLog.Path))
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
