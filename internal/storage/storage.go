// Package storage publishes trimmed audio files to their final destination.
// It defines the Backend interface and implementations for the local output
// directory and S3-compatible object stores.
package storage

import "context"

// Backend defines the interface for publishing trimmed files.
type Backend interface {
	// Publish copies the local file to the backend under the given name and
	// returns the resulting destination (a filesystem path or URL).
	Publish(ctx context.Context, localPath, name string) (destination string, err error)

	// Describe returns a short human-readable label for logging.
	Describe() string
}
