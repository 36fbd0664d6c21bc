package workflow_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"sentrim/internal/logging"
	"sentrim/internal/queue"
	"sentrim/internal/services"
	"sentrim/internal/stage"
	"sentrim/internal/testsupport"
	"sentrim/internal/workflow"
)

type fakeHandler struct {
	name    string
	execute func(ctx context.Context, item *queue.Item) error
}

func (h *fakeHandler) Prepare(ctx context.Context, item *queue.Item) error {
	item.SetProgress(h.name, h.name+" started", 0)
	return nil
}

func (h *fakeHandler) Execute(ctx context.Context, item *queue.Item) error {
	if h.execute != nil {
		return h.execute(ctx, item)
	}
	return nil
}

func (h *fakeHandler) HealthCheck(ctx context.Context) stage.Health {
	return stage.Healthy(h.name)
}

type recordingNotifier struct {
	mu        sync.Mutex
	started   []int
	completed []string
	reviews   []string
	errors    []string
}

func (n *recordingNotifier) NotifyBatchStarted(_ context.Context, count int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.started = append(n.started, count)
	return nil
}

func (n *recordingNotifier) NotifyItemCompleted(_ context.Context, base string, _ float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, base)
	return nil
}

func (n *recordingNotifier) NotifyItemReview(_ context.Context, base, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reviews = append(n.reviews, base)
	return nil
}

func (n *recordingNotifier) NotifyBatchCompleted(_ context.Context, _, _, _ int, _ time.Duration) error {
	return nil
}

func (n *recordingNotifier) NotifyError(_ context.Context, _ error, label string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, label)
	return nil
}

func (n *recordingNotifier) TestNotification(context.Context) error { return nil }

func newPipeline(t *testing.T, transcribe, trim func(ctx context.Context, item *queue.Item) error) (*workflow.Manager, *queue.Store, *recordingNotifier) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	notifier := &recordingNotifier{}
	mgr := workflow.NewManagerWithNotifier(cfg, store, logging.NewNop(), notifier)
	mgr.RegisterHandler("transcription", queue.StatusPending, queue.StatusTranscribing, queue.StatusTranscribed, &fakeHandler{name: "transcription", execute: transcribe})
	mgr.RegisterHandler("trimming", queue.StatusTranscribed, queue.StatusTrimming, queue.StatusCompleted, &fakeHandler{name: "trimming", execute: trim})
	return mgr, store, notifier
}

func TestRunDrainsQueueThroughBothStages(t *testing.T) {
	mgr, store, notifier := newPipeline(t, nil, func(ctx context.Context, item *queue.Item) error {
		item.CutSeconds = 95
		return nil
	})

	ctx := context.Background()
	testsupport.Enqueue(t, store, "alpha", "/in/alpha_original.wav", "/in/alpha_part1.wav")
	testsupport.Enqueue(t, store, "beta", "/in/beta_original.wav", "")

	summary, err := mgr.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 2 || summary.Failed != 0 || summary.Review != 0 {
		t.Fatalf("unexpected summary: %#v", summary)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, item := range items {
		if item.Status != queue.StatusCompleted {
			t.Fatalf("expected completed, got %s for %s", item.Status, item.Base)
		}
		if item.ProgressPercent != 100 {
			t.Fatalf("expected 100%% progress, got %v", item.ProgressPercent)
		}
	}

	if len(notifier.started) != 1 || notifier.started[0] != 2 {
		t.Fatalf("expected batch start with 2 items, got %v", notifier.started)
	}
}

func TestRunClassifiesFailures(t *testing.T) {
	mgr, store, notifier := newPipeline(t,
		func(ctx context.Context, item *queue.Item) error {
			switch item.Base {
			case "broken":
				return services.Wrap(services.ErrExternalTool, "transcription", "whisperx", "WhisperX crashed", nil)
			case "silent":
				return services.Wrap(services.ErrValidation, "transcription", "validate", "No speech detected", nil)
			default:
				return nil
			}
		},
		nil,
	)

	ctx := context.Background()
	testsupport.Enqueue(t, store, "broken", "/in/broken_original.wav", "")
	testsupport.Enqueue(t, store, "silent", "/in/silent_original.wav", "")
	testsupport.Enqueue(t, store, "fine", "/in/fine_original.wav", "")

	summary, err := mgr.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 1 || summary.Failed != 1 || summary.Review != 1 {
		t.Fatalf("unexpected summary: %#v", summary)
	}

	broken, _ := store.FindBySourcePath(ctx, "/in/broken_original.wav")
	if broken.Status != queue.StatusFailed || broken.ErrorMessage == "" {
		t.Fatalf("expected failed broken item, got %#v", broken)
	}

	silent, _ := store.FindBySourcePath(ctx, "/in/silent_original.wav")
	if silent.Status != queue.StatusReview || !silent.NeedsReview {
		t.Fatalf("expected review silent item, got %#v", silent)
	}

	if len(notifier.reviews) != 1 || notifier.reviews[0] != "silent" {
		t.Fatalf("expected review notification for silent, got %v", notifier.reviews)
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("expected one error notification, got %v", notifier.errors)
	}
}

func TestRunResetsStuckItems(t *testing.T) {
	mgr, store, _ := newPipeline(t, nil, nil)

	ctx := context.Background()
	item := testsupport.Enqueue(t, store, "stuck", "/in/stuck_original.wav", "")
	item.Status = queue.StatusTranscribing
	if err := store.Update(ctx, item); err != nil {
		t.Fatalf("Update: %v", err)
	}

	summary, err := mgr.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 1 {
		t.Fatalf("expected the stuck item to be reprocessed, got %#v", summary)
	}
}

func TestRunRequiresStages(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	mgr := workflow.NewManagerWithNotifier(cfg, store, logging.NewNop(), &recordingNotifier{})

	if _, err := mgr.Run(context.Background()); err == nil {
		t.Fatal("expected error when no stages registered")
	}
}

func TestRunFailsWhenStageUnhealthy(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	mgr := workflow.NewManagerWithNotifier(cfg, store, logging.NewNop(), &recordingNotifier{})
	mgr.RegisterHandler("sick", queue.StatusPending, queue.StatusTranscribing, queue.StatusTranscribed, unhealthyHandler{})

	if _, err := mgr.Run(context.Background()); err == nil {
		t.Fatal("expected error for unhealthy stage")
	}
}

type unhealthyHandler struct{}

func (unhealthyHandler) Prepare(context.Context, *queue.Item) error { return nil }
func (unhealthyHandler) Execute(context.Context, *queue.Item) error { return nil }
func (unhealthyHandler) HealthCheck(context.Context) stage.Health {
	return stage.Unhealthy("sick", "binary missing")
}
