// Package queue persists batch trim items in SQLite and exposes helpers for
// driving their lifecycle.
//
// The Store manages database connections, schema initialization, stuck-item
// recovery, and the status transitions the workflow manager relies on. Items
// capture the resolved file pair, transcript locations, chosen cuts, and the
// window-violation warnings raised while trimming, so a batch can resume
// after interruption without re-transcribing finished work.
//
// The database is transient storage for in-flight batches rather than a
// long-term archive. Schema changes bump the version in schema.go; users
// clear the database to adopt the new schema.
package queue
