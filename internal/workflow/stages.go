package workflow

import (
	"fmt"

	"log/slog"

	"sentrim/internal/config"
	"sentrim/internal/queue"
	"sentrim/internal/stage"
	"sentrim/internal/transcription"
	"sentrim/internal/trimming"
)

// pipelineStage binds a handler to the statuses it consumes and produces.
type pipelineStage struct {
	name             string
	trigger          queue.Status
	processingStatus queue.Status
	doneStatus       queue.Status
	handler          stage.Handler
}

// loggerAware lets the manager hand stage handlers a contextual logger
// before each item.
type loggerAware interface {
	SetLogger(*slog.Logger)
}

// ConfigureDefaultStages registers the transcription and trimming stages.
func (m *Manager) ConfigureDefaultStages(cfg *config.Config, store *queue.Store, logger *slog.Logger) error {
	trimmer, err := trimming.NewTrimmer(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("configure stages: %w", err)
	}
	m.RegisterStage(pipelineStage{
		name:             "transcription",
		trigger:          queue.StatusPending,
		processingStatus: queue.StatusTranscribing,
		doneStatus:       queue.StatusTranscribed,
		handler:          transcription.NewTranscriber(cfg, store, logger),
	})
	m.RegisterStage(pipelineStage{
		name:             "trimming",
		trigger:          queue.StatusTranscribed,
		processingStatus: queue.StatusTrimming,
		doneStatus:       queue.StatusCompleted,
		handler:          trimmer,
	})
	return nil
}

// RegisterStage appends a stage to the dispatch order.
func (m *Manager) RegisterStage(ps pipelineStage) {
	m.stages = append(m.stages, ps)
}

// RegisterHandler registers a custom handler for the given transition (used in tests).
func (m *Manager) RegisterHandler(name string, trigger, processing, done queue.Status, handler stage.Handler) {
	m.RegisterStage(pipelineStage{
		name:             name,
		trigger:          trigger,
		processingStatus: processing,
		doneStatus:       done,
		handler:          handler,
	})
}

func (m *Manager) stageForStatus(status queue.Status) (pipelineStage, bool) {
	for _, ps := range m.stages {
		if ps.trigger == status {
			return ps, true
		}
	}
	return pipelineStage{}, false
}

func (m *Manager) triggerStatuses() []queue.Status {
	statuses := make([]queue.Status, 0, len(m.stages))
	for _, ps := range m.stages {
		statuses = append(statuses, ps.trigger)
	}
	return statuses
}
