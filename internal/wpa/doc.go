// Package wpa provides typed wrappers for common wpa_supplicant control
// commands on top of the ctrl session engine.
//
// The ctrl package returns reply text verbatim; this package knows the
// command verbs and their reply shapes: PING/PONG, the key=value blocks of
// STATUS and MIB, and the tab-separated tables of LIST_NETWORKS and
// SCAN_RESULTS. FAIL and UNKNOWN COMMAND replies surface as
// ErrCommandFailed here.
//
// It also hosts control-socket discovery, which deliberately lives outside
// the session core: Interfaces lists the daemon sockets present in a
// control directory.
package wpa
