package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a trim item.
type Status string

const (
	StatusPending      Status = "pending"
	StatusTranscribing Status = "transcribing"
	StatusTranscribed  Status = "transcribed"
	StatusTrimming     Status = "trimming"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
	StatusReview       Status = "review"
)

var allStatuses = []Status{
	StatusPending,
	StatusTranscribing,
	StatusTranscribed,
	StatusTrimming,
	StatusCompleted,
	StatusFailed,
	StatusReview,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

var processingStatuses = map[Status]struct{}{
	StatusTranscribing: {},
	StatusTrimming:     {},
}

type statusTransition struct {
	from Status
	to   Status
}

// stageRollbackTransitions return in-flight items to their stage entry
// status after a crash or interrupted run.
var stageRollbackTransitions = []statusTransition{
	{from: StatusTranscribing, to: StatusPending},
	{from: StatusTrimming, to: StatusTranscribed},
}

// Item represents a trim item persisted in SQLite.
type Item struct {
	ID                     int64
	Base                   string
	SourcePath             string
	DiarizedPath           string
	Status                 Status
	SourceTranscriptPath   string
	DiarizedTranscriptPath string
	CutSeconds             float64
	DiarizedCutSeconds     float64
	Warnings               string
	TrimmedPath            string
	DiarizedTrimmedPath    string
	ErrorMessage           string
	ProgressStage          string
	ProgressPercent        float64
	ProgressMessage        string
	NeedsReview            bool
	ReviewReason           string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// HealthSummary describes aggregated queue counts per key lifecycle state.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Completed  int
	Failed     int
	Review     int
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// HasPair reports whether the item carries a diarized counterpart.
func (i Item) HasPair() bool {
	return strings.TrimSpace(i.DiarizedPath) != ""
}

// IsProcessing returns true when the status reflects an in-flight operation.
func (i Item) IsProcessing() bool {
	_, ok := processingStatuses[i.Status]
	return ok
}

// IsTerminal reports whether the item has finished, successfully or not.
func (i Item) IsTerminal() bool {
	switch i.Status {
	case StatusCompleted, StatusFailed, StatusReview:
		return true
	default:
		return false
	}
}

// SetProgress updates all three progress fields together.
func (i *Item) SetProgress(stage, message string, percent float64) {
	i.ProgressStage = stage
	i.ProgressMessage = message
	i.ProgressPercent = percent
}

// SetFailed marks the item as failed with the given error message.
func (i *Item) SetFailed(message string) {
	i.Status = StatusFailed
	i.ErrorMessage = message
	i.ProgressPercent = 0
	i.ProgressMessage = message
	i.ProgressStage = "Failed"
}

// SetReview marks the item as needing manual intervention.
func (i *Item) SetReview(reason string) {
	i.Status = StatusReview
	i.NeedsReview = true
	i.ReviewReason = reason
	i.ErrorMessage = reason
	i.ProgressStage = "Review"
	i.ProgressMessage = reason
}
