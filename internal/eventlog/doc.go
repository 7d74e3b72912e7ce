// Package eventlog persists control-interface events to SQLite so
// monitoring runs leave an inspectable trail.
//
// The store keeps one row per received event (interface, severity, body,
// timestamp), enforces a schema version, and prunes rows past the
// configured retention. Writers retry briefly on SQLITE_BUSY so a reader
// running `wpactl events` never fails a concurrent recorder.
package eventlog
