// Package ctrl implements the wpa_supplicant / hostapd control-interface
// protocol over a Unix datagram socket.
//
// It owns the session lifecycle: binding a uniquely named local socket,
// sending plain-text commands, matching each command with its reply, and
// queueing the unsolicited event frames that interleave with replies on the
// same channel once ATTACH has been acknowledged. Replies are returned
// verbatim; interpreting command-specific reply text belongs to the wpa
// package.
//
// A Conn is not safe for unsynchronized concurrent use. The supported
// pattern for mixed workloads is two connections: one dedicated to commands
// and a second, attached, connection dedicated to events.
package ctrl
