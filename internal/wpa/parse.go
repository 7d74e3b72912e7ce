package wpa

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the parsed reply to STATUS. Values keeps every reported pair,
// including keys without a dedicated field.
type Status struct {
	WpaState  string
	SSID      string
	BSSID     string
	Mode      string
	KeyMgmt   string
	Frequency int
	IPAddress string
	Address   string
	Values    map[string]string
}

// Network is one row of the LIST_NETWORKS table.
type Network struct {
	ID    int
	SSID  string
	BSSID string
	Flags string
}

// Current reports whether this network block is the one currently in use.
func (n Network) Current() bool {
	return strings.Contains(n.Flags, "[CURRENT]")
}

// BSS is one row of the SCAN_RESULTS table.
type BSS struct {
	BSSID     string
	Frequency int
	Signal    int
	Flags     string
	SSID      string
}

func parseStatus(reply string) *Status {
	values := parseKeyValues(reply)
	st := &Status{Values: values}
	st.WpaState = values["wpa_state"]
	st.SSID = values["ssid"]
	st.BSSID = values["bssid"]
	st.Mode = values["mode"]
	st.KeyMgmt = values["key_mgmt"]
	st.IPAddress = values["ip_address"]
	st.Address = values["address"]
	if freq, err := strconv.Atoi(values["freq"]); err == nil {
		st.Frequency = freq
	}
	return st
}

// parseKeyValues splits a key=value block, skipping malformed lines.
func parseKeyValues(reply string) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[key] = value
	}
	return values
}

func parseNetworks(reply string) ([]Network, error) {
	var networks []Network
	for _, fields := range tableRows(reply) {
		if len(fields) < 3 {
			return nil, fmt.Errorf("wpa: malformed network row %q", strings.Join(fields, "\t"))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("wpa: network id %q: %w", fields[0], err)
		}
		n := Network{ID: id, SSID: fields[1], BSSID: fields[2]}
		if len(fields) > 3 {
			n.Flags = fields[3]
		}
		networks = append(networks, n)
	}
	return networks, nil
}

func parseScanResults(reply string) ([]BSS, error) {
	var results []BSS
	for _, fields := range tableRows(reply) {
		if len(fields) < 4 {
			return nil, fmt.Errorf("wpa: malformed scan row %q", strings.Join(fields, "\t"))
		}
		freq, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("wpa: scan frequency %q: %w", fields[1], err)
		}
		signal, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("wpa: scan signal %q: %w", fields[2], err)
		}
		bss := BSS{BSSID: fields[0], Frequency: freq, Signal: signal, Flags: fields[3]}
		if len(fields) > 4 {
			bss.SSID = fields[4]
		}
		results = append(results, bss)
	}
	return results, nil
}

// tableRows splits a tabular reply into tab-separated rows, dropping the
// "a / b / c" header line the daemon prints first.
func tableRows(reply string) [][]string {
	lines := strings.Split(reply, "\n")
	var rows [][]string
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if i == 0 && strings.Contains(line, " / ") {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}
