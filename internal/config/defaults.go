package config

const (
	defaultCtrlDir               = "/var/run/wpa_supplicant"
	defaultRequestTimeoutSeconds = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLogDir                = "~/.local/share/wpactl/logs"
	defaultEventLogPath          = "~/.local/share/wpactl/events.db"
	defaultEventLogRetentionDays = 30
	defaultMonitorPollSeconds    = 1
	defaultMonitorLockDir        = "~/.local/share/wpactl"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Control: Control{
			CtrlDir:               defaultCtrlDir,
			RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
		EventLog: EventLog{
			Path:          defaultEventLogPath,
			RetentionDays: defaultEventLogRetentionDays,
		},
		Monitor: Monitor{
			PollIntervalSeconds: defaultMonitorPollSeconds,
			LockDir:             defaultMonitorLockDir,
			Netlink:             true,
		},
	}
}
