package trimming_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"sentrim/internal/config"
	"sentrim/internal/logging"
	"sentrim/internal/media/trim"
	"sentrim/internal/notifications"
	"sentrim/internal/queue"
	"sentrim/internal/segments"
	"sentrim/internal/services"
	"sentrim/internal/storage"
	"sentrim/internal/testsupport"
	"sentrim/internal/trimming"
)

func writeTranscript(t *testing.T, dir, name string, ends ...float64) string {
	t.Helper()
	payload := `{"segments":[`
	start := 0.0
	for i, end := range ends {
		if i > 0 {
			payload += ","
		}
		payload += fmt.Sprintf(`{"text":"Sentence %d.","start":%g,"end":%g}`, i+1, start, end)
		start = end
	}
	payload += `]}`
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	return path
}

func newTrimmer(t *testing.T, cfg *config.Config, store *queue.Store) *trimming.Trimmer {
	t.Helper()

	cutter := trim.NewCutter(cfg.FFmpegBinary())
	cutter.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		dest := args[len(args)-1]
		return os.WriteFile(dest, []byte("trimmed"), 0o644)
	})

	backend, err := storage.FromConfig(cfg)
	if err != nil {
		t.Fatalf("storage.FromConfig: %v", err)
	}

	return trimming.NewTrimmerWithDependencies(cfg, store, logging.NewNop(), cutter, backend, notifications.NewService(cfg))
}

func TestExecuteSynchronizesPairAndPublishes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	trimmer := newTrimmer(t, cfg, store)

	transcriptDir := t.TempDir()
	ctx := context.Background()
	item := testsupport.Enqueue(t, store, "alpha", "/in/alpha_original.wav", "/in/alpha_part1.wav")
	item.SourceTranscriptPath = writeTranscript(t, transcriptDir, "original.json", 50, 95)
	item.DiarizedTranscriptPath = writeTranscript(t, transcriptDir, "diarized.json", 30, 70)

	if err := trimmer.Prepare(ctx, item); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := trimmer.Execute(ctx, item); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if item.CutSeconds != 95 || item.DiarizedCutSeconds != 70 {
		t.Fatalf("unexpected cuts: %v / %v", item.CutSeconds, item.DiarizedCutSeconds)
	}
	warnings := segments.ParseWarnings(item.Warnings)
	if len(warnings) != 1 || warnings[0] != segments.WarnPairMismatch {
		t.Fatalf("expected pair mismatch warning, got %q", item.Warnings)
	}

	for _, published := range []string{item.TrimmedPath, item.DiarizedTrimmedPath} {
		content, err := os.ReadFile(published)
		if err != nil {
			t.Fatalf("read published output %q: %v", published, err)
		}
		if string(content) != "trimmed" {
			t.Fatalf("unexpected published content %q", content)
		}
	}

	reportPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("trim-report-%d.json", item.ID))
	if _, err := os.Stat(reportPath); err != nil {
		t.Fatalf("expected trim report at %s: %v", reportPath, err)
	}
}

func TestExecuteSoloRecording(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	trimmer := newTrimmer(t, cfg, store)

	ctx := context.Background()
	item := testsupport.Enqueue(t, store, "solo", "/in/solo_original.wav", "")
	item.SourceTranscriptPath = writeTranscript(t, t.TempDir(), "solo.json", 65, 130)

	if err := trimmer.Execute(ctx, item); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if item.CutSeconds != 65 {
		t.Fatalf("expected cut at 65, got %v", item.CutSeconds)
	}
	if item.DiarizedTrimmedPath != "" {
		t.Fatalf("solo item should not publish a diarized output, got %q", item.DiarizedTrimmedPath)
	}
	if item.Warnings != "" {
		t.Fatalf("expected clean cut, got warnings %q", item.Warnings)
	}
}

func TestExecuteNoSpeechRoutesToReview(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	trimmer := newTrimmer(t, cfg, store)

	ctx := context.Background()
	item := testsupport.Enqueue(t, store, "silent", "/in/silent_original.wav", "")
	item.SourceTranscriptPath = writeTranscript(t, t.TempDir(), "silent.json")

	err := trimmer.Execute(ctx, item)
	if err == nil {
		t.Fatal("expected error for empty transcript")
	}
	if !errors.Is(err, segments.ErrNoSpeech) {
		t.Fatalf("expected no-speech cause, got %v", err)
	}
	if services.FailureStatus(err) != queue.StatusReview {
		t.Fatalf("no-speech failures should route to review, got %s", services.FailureStatus(err))
	}
}

func TestExecuteMissingTranscriptIsValidationError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	trimmer := newTrimmer(t, cfg, store)

	item := testsupport.Enqueue(t, store, "bare", "/in/bare_original.wav", "")
	err := trimmer.Execute(context.Background(), item)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestExecuteRejectsInvertedWindow(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithWindow(120, 60))
	store := testsupport.MustOpenStore(t, cfg)
	trimmer := newTrimmer(t, cfg, store)

	item := testsupport.Enqueue(t, store, "alpha", "/in/alpha_original.wav", "")
	err := trimmer.Execute(context.Background(), item)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
}
