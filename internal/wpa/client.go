package wpa

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCommandFailed indicates the daemon rejected a command with FAIL or
// UNKNOWN COMMAND.
var ErrCommandFailed = errors.New("wpa: command failed")

// Session is the slice of the ctrl connection this package needs.
type Session interface {
	Request(cmd string) (string, error)
}

// Client issues typed commands over a control session.
type Client struct {
	s Session
}

// NewClient wraps an open control session.
func NewClient(s Session) *Client {
	return &Client{s: s}
}

// Raw sends a command unmodified and returns the trimmed reply, surfacing
// FAIL / UNKNOWN COMMAND as ErrCommandFailed.
func (c *Client) Raw(cmd string) (string, error) {
	reply, err := c.s.Request(cmd)
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimRight(reply, "\n")
	switch trimmed {
	case "FAIL":
		return "", fmt.Errorf("%w: %s", ErrCommandFailed, firstWord(cmd))
	case "UNKNOWN COMMAND":
		return "", fmt.Errorf("%w: unknown command %s", ErrCommandFailed, firstWord(cmd))
	}
	return trimmed, nil
}

// Ping checks daemon liveness.
func (c *Client) Ping() error {
	reply, err := c.Raw("PING")
	if err != nil {
		return err
	}
	if reply != "PONG" {
		return fmt.Errorf("wpa: unexpected ping reply %q", reply)
	}
	return nil
}

// Status reports the daemon's current connection state.
func (c *Client) Status() (*Status, error) {
	reply, err := c.Raw("STATUS")
	if err != nil {
		return nil, err
	}
	return parseStatus(reply), nil
}

// ListNetworks returns the configured network blocks.
func (c *Client) ListNetworks() ([]Network, error) {
	reply, err := c.Raw("LIST_NETWORKS")
	if err != nil {
		return nil, err
	}
	return parseNetworks(reply)
}

// Scan asks the daemon to start a scan. Results arrive asynchronously; the
// daemon announces completion with a CTRL-EVENT-SCAN-RESULTS event, after
// which ScanResults returns the findings.
func (c *Client) Scan() error {
	reply, err := c.Raw("SCAN")
	if err != nil {
		return err
	}
	if reply != "OK" {
		return fmt.Errorf("wpa: scan rejected: %q", reply)
	}
	return nil
}

// ScanResults returns the most recent scan findings.
func (c *Client) ScanResults() ([]BSS, error) {
	reply, err := c.Raw("SCAN_RESULTS")
	if err != nil {
		return nil, err
	}
	return parseScanResults(reply)
}

// MIB returns the daemon's MIB variables as a key/value map.
func (c *Client) MIB() (map[string]string, error) {
	reply, err := c.Raw("MIB")
	if err != nil {
		return nil, err
	}
	return parseKeyValues(reply), nil
}

func firstWord(cmd string) string {
	if i := strings.IndexByte(cmd, ' '); i > 0 {
		return cmd[:i]
	}
	return cmd
}
