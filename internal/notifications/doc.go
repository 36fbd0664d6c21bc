// Package notifications delivers batch progress updates via ntfy.
//
// When no ntfy topic is configured a noop implementation is returned, so
// callers never need to guard notification calls.
package notifications
