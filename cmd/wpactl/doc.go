// Command wpactl talks to a running wpa_supplicant / hostapd daemon through
// its control socket: one-shot commands (ping, status, scan, networks, raw),
// a long-running event monitor with optional SQLite recording, and
// configuration utilities.
package main
