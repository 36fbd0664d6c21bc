// Package workflow drives queued items through the trimming pipeline.
//
// The Manager claims the oldest actionable item, dispatches it to the stage
// registered for its status, and persists every transition so an interrupted
// batch resumes where it left off. Processing runs until the queue drains;
// failures are classified through the services package so items land in
// failed (retryable) or review (needs a human) rather than blocking the
// batch.
package workflow
