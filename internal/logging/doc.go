// Package logging centralizes slog construction and the attribute helpers
// used across wpactl.
//
// It standardizes field names (component, event_type, error_hint, impact) so
// log output stays greppable, and offers console and JSON handlers selected
// through configuration. Packages receive a *slog.Logger and scope it with
// NewComponentLogger rather than constructing their own handlers.
package logging
