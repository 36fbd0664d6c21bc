package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"sentrim/internal/config"
	"sentrim/internal/logging"
	"sentrim/internal/notifications"
	"sentrim/internal/queue"
	"sentrim/internal/services"
)

// Manager coordinates queue processing using registered stages.
type Manager struct {
	cfg      *config.Config
	store    *queue.Store
	logger   *slog.Logger
	notifier notifications.Service

	stages []pipelineStage
	runID  string
}

// Summary aggregates the outcome of a batch run.
type Summary struct {
	Processed int
	Failed    int
	Review    int
	Duration  time.Duration
}

// NewManager constructs a workflow manager.
func NewManager(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Manager {
	return NewManagerWithNotifier(cfg, store, logger, notifications.NewService(cfg))
}

// NewManagerWithNotifier constructs a workflow manager with a custom notifier (used in tests).
func NewManagerWithNotifier(cfg *config.Config, store *queue.Store, logger *slog.Logger, notifier notifications.Service) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		cfg:      cfg,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "workflow-manager"),
		notifier: notifier,
		runID:    uuid.NewString(),
	}
}

// RunID returns the identifier assigned to this batch run.
func (m *Manager) RunID() string {
	return m.runID
}

// Run processes the queue until no actionable items remain.
func (m *Manager) Run(ctx context.Context) (Summary, error) {
	if len(m.stages) == 0 {
		return Summary{}, errors.New("workflow stages not configured")
	}

	ctx = services.WithRunID(ctx, m.runID)
	logger := logging.WithContext(ctx, m.logger)
	start := time.Now()

	if reset, err := m.store.ResetStuckProcessing(ctx); err != nil {
		return Summary{}, fmt.Errorf("reset stuck items: %w", err)
	} else if reset > 0 {
		logger.Info("reset stuck items from previous run", logging.Int64("count", reset))
	}

	if err := m.checkStageHealth(ctx); err != nil {
		return Summary{}, err
	}

	pending, err := m.store.ItemsByStatus(ctx, queue.StatusPending)
	if err != nil {
		return Summary{}, fmt.Errorf("count pending items: %w", err)
	}
	if len(pending) > 0 {
		if err := m.notifier.NotifyBatchStarted(ctx, len(pending)); err != nil {
			logger.Warn("failed to send batch start notification", logging.Error(err))
		}
	}

	summary := Summary{}
	for {
		select {
		case <-ctx.Done():
			summary.Duration = time.Since(start)
			return summary, ctx.Err()
		default:
		}

		item, err := m.store.NextForStatuses(ctx, m.triggerStatuses()...)
		if err != nil {
			summary.Duration = time.Since(start)
			return summary, fmt.Errorf("fetch next item: %w", err)
		}
		if item == nil {
			break
		}

		if err := m.processItem(ctx, item); err != nil {
			if errors.Is(err, context.Canceled) {
				summary.Duration = time.Since(start)
				return summary, err
			}
		}

		switch item.Status {
		case queue.StatusCompleted:
			summary.Processed++
		case queue.StatusFailed:
			summary.Failed++
		case queue.StatusReview:
			summary.Review++
		}
	}

	summary.Duration = time.Since(start)
	logger.Info("batch complete",
		logging.Int("processed", summary.Processed),
		logging.Int("failed", summary.Failed),
		logging.Int("review", summary.Review),
		logging.Duration("duration", summary.Duration),
	)
	if summary.Processed+summary.Failed+summary.Review > 0 {
		if err := m.notifier.NotifyBatchCompleted(ctx, summary.Processed, summary.Failed, summary.Review, summary.Duration); err != nil {
			logger.Warn("failed to send batch completion notification", logging.Error(err))
		}
	}
	return summary, nil
}

func (m *Manager) processItem(ctx context.Context, item *queue.Item) error {
	ps, ok := m.stageForStatus(item.Status)
	if !ok {
		return fmt.Errorf("no stage configured for status %s", item.Status)
	}

	stageCtx := services.WithStage(services.WithItemID(ctx, item.ID), ps.name)
	stageLogger := logging.WithContext(stageCtx, m.logger)
	if aware, ok := ps.handler.(loggerAware); ok {
		aware.SetLogger(m.logger)
	}

	item.Status = ps.processingStatus
	item.ErrorMessage = ""
	if err := m.store.Update(stageCtx, item); err != nil {
		return fmt.Errorf("persist processing transition: %w", err)
	}

	stageStart := time.Now()
	stageLogger.Info("stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String("base", item.Base),
		logging.String("source_file", strings.TrimSpace(item.SourcePath)),
	)

	if err := ps.handler.Prepare(stageCtx, item); err != nil {
		m.handleStageFailure(stageCtx, ps.name, item, err)
		return err
	}
	if err := m.store.Update(stageCtx, item); err != nil {
		return fmt.Errorf("persist stage preparation: %w", err)
	}

	if err := ps.handler.Execute(stageCtx, item); err != nil {
		if errors.Is(err, context.Canceled) {
			stageLogger.Debug("stage interrupted by shutdown")
			return err
		}
		m.handleStageFailure(stageCtx, ps.name, item, err)
		return err
	}

	if item.Status == ps.processingStatus || item.Status == "" {
		item.Status = ps.doneStatus
	}
	if item.Status == queue.StatusCompleted && item.ProgressPercent < 100 {
		item.ProgressPercent = 100
	}
	if err := m.store.Update(stageCtx, item); err != nil {
		return fmt.Errorf("persist stage result: %w", err)
	}

	stageLogger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String("next_status", string(item.Status)),
		logging.Duration("stage_duration", time.Since(stageStart)),
	)
	return nil
}

func (m *Manager) handleStageFailure(ctx context.Context, stageName string, item *queue.Item, stageErr error) {
	logger := logging.WithContext(ctx, m.logger)

	message := strings.TrimSpace(stageErr.Error())
	status := services.FailureStatus(stageErr)
	if status == queue.StatusReview {
		item.SetReview(message)
	} else {
		item.SetFailed(message)
	}

	logger.Error("stage failed",
		logging.String(logging.FieldEventType, "stage_failure"),
		logging.String("resolved_status", string(status)),
		logging.String("error_message", message),
		logging.Error(stageErr),
	)

	if err := m.store.Update(ctx, item); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("shutdown in progress, could not persist stage failure")
		} else {
			logger.Error("failed to persist stage failure", logging.Error(err))
		}
	}

	if status == queue.StatusReview {
		if err := m.notifier.NotifyItemReview(ctx, item.Base, message); err != nil {
			logger.Warn("failed to send review notification", logging.Error(err))
		}
	} else {
		if err := m.notifier.NotifyError(ctx, stageErr, stageName); err != nil {
			logger.Warn("failed to send error notification", logging.Error(err))
		}
	}
}

func (m *Manager) checkStageHealth(ctx context.Context) error {
	logger := logging.WithContext(ctx, m.logger)
	for _, ps := range m.stages {
		health := ps.handler.HealthCheck(ctx)
		if !health.Ready {
			return fmt.Errorf("stage %s not ready: %s", health.Name, health.Detail)
		}
		logger.Debug("stage healthy", logging.String("stage", health.Name))
	}
	return nil
}
