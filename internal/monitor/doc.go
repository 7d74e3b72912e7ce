// Package monitor runs a long-lived event listener against one daemon
// control socket.
//
// It owns a dedicated attached ctrl connection, reads events with bounded
// waits so shutdown stays prompt, logs each event, and optionally records
// it to the eventlog store. A flock-based lock keeps recorders
// single-instance per interface, and an optional netlink watcher notices
// the interface cycling so the monitor reconnects instead of polling a
// dead socket.
package monitor
