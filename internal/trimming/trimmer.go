package trimming

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"log/slog"

	"sentrim/internal/config"
	"sentrim/internal/logging"
	"sentrim/internal/media/ffprobe"
	"sentrim/internal/media/trim"
	"sentrim/internal/notifications"
	"sentrim/internal/queue"
	"sentrim/internal/segments"
	"sentrim/internal/services"
	"sentrim/internal/services/whisperx"
	"sentrim/internal/stage"
	"sentrim/internal/storage"
	"sentrim/internal/textutil"
)

// pairSimilarityFloor is the cosine similarity below which paired
// transcripts likely belong to different recordings.
const pairSimilarityFloor = 0.35

// Trimmer manages cut selection and output production for transcribed items.
type Trimmer struct {
	store    *queue.Store
	cfg      *config.Config
	logger   *slog.Logger
	cutter   *trim.Cutter
	backend  storage.Backend
	notifier notifications.Service
}

// NewTrimmer constructs the trimming handler.
func NewTrimmer(cfg *config.Config, store *queue.Store, logger *slog.Logger) (*Trimmer, error) {
	backend, err := storage.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("trimming backend: %w", err)
	}
	return NewTrimmerWithDependencies(cfg, store, logger, trim.NewCutter(cfg.FFmpegBinary()), backend, notifications.NewService(cfg)), nil
}

// NewTrimmerWithDependencies allows injecting custom dependencies (used for tests).
func NewTrimmerWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, cutter *trim.Cutter, backend storage.Backend, notifier notifications.Service) *Trimmer {
	t := &Trimmer{
		store:    store,
		cfg:      cfg,
		cutter:   cutter,
		backend:  backend,
		notifier: notifier,
	}
	t.SetLogger(logger)
	return t
}

func (t *Trimmer) SetLogger(logger *slog.Logger) {
	t.logger = logging.NewComponentLogger(logger, "trimmer")
}

func (t *Trimmer) Prepare(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, t.logger)
	item.SetProgress("Trimming", "Selecting cut boundary", 0)
	logger.Debug("starting trim preparation")
	return nil
}

func (t *Trimmer) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, t.logger)

	window := t.cfg.Window()
	if err := window.Validate(); err != nil {
		return services.Wrap(
			services.ErrConfiguration,
			"trimming",
			"validate window",
			"Trim window is invalid; fix min_seconds/max_seconds in config",
			err,
		)
	}

	primary, err := t.loadTranscript(item.SourceTranscriptPath, "original")
	if err != nil {
		return err
	}

	var sourceCut, diarizedCut segments.Cut
	if item.HasPair() {
		diarized, err := t.loadTranscript(item.DiarizedTranscriptPath, "diarized")
		if err != nil {
			return err
		}
		if score := transcriptSimilarity(primary, diarized); score > 0 && score < pairSimilarityFloor {
			logging.WarnWithContext(logger, "paired transcripts diverge; verify the files belong together", "pair_similarity_low",
				logging.String("base", item.Base),
				logging.Float64("similarity", score),
			)
		}
		sourceCut, diarizedCut, err = segments.Synchronize(primary, diarized, window)
		if err != nil {
			return wrapSelectionError(err)
		}
	} else {
		sourceCut, err = segments.SelectCut(primary, window)
		if err != nil {
			return wrapSelectionError(err)
		}
	}

	item.CutSeconds = sourceCut.Seconds
	item.DiarizedCutSeconds = diarizedCut.Seconds
	item.Warnings = combineWarnings(sourceCut, diarizedCut)
	t.logWarnings(logger, item, sourceCut, diarizedCut)

	logger.Info("cut selected",
		logging.Float64("cut_seconds", sourceCut.Seconds),
		logging.Float64("diarized_cut_seconds", diarizedCut.Seconds),
		logging.String("warnings", item.Warnings),
	)

	item.SetProgress("Trimming", fmt.Sprintf("Cutting at %.1fs", sourceCut.Seconds), 40)
	t.persistProgress(ctx, logger, item)

	workDir := filepath.Join(t.cfg.Paths.WorkDir, fmt.Sprintf("item-%d", item.ID), "trimmed")

	published, err := t.cutAndPublish(ctx, item.SourcePath, workDir, sourceCut.Seconds)
	if err != nil {
		return err
	}
	item.TrimmedPath = published

	if item.HasPair() {
		published, err = t.cutAndPublish(ctx, item.DiarizedPath, workDir, diarizedCut.Seconds)
		if err != nil {
			return err
		}
		item.DiarizedTrimmedPath = published
	}

	if reportPath, err := WriteReport(t.cfg.Paths.LogDir, item, sourceCut, diarizedCut, window, t.probeDuration(ctx, logger, item.SourcePath)); err != nil {
		logger.Warn("failed to write trim report", logging.Error(err))
	} else {
		logger.Info("trim report written", logging.String("report", reportPath))
	}

	if t.notifier != nil {
		if err := t.notifier.NotifyItemCompleted(ctx, item.Base, sourceCut.Seconds); err != nil {
			logger.Warn("failed to send completion notification", logging.Error(err))
		}
	}

	item.SetProgress("Trimmed", fmt.Sprintf("Published to %s", t.backend.Describe()), 100)
	logger.Info("trimming complete",
		logging.String("trimmed", item.TrimmedPath),
		logging.String("diarized_trimmed", item.DiarizedTrimmedPath),
	)
	return nil
}

// loadTranscript reads a WhisperX JSON transcript into boundary segments.
func (t *Trimmer) loadTranscript(path, label string) ([]segments.Segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, services.Wrap(
			services.ErrValidation,
			"trimming",
			"load transcript",
			fmt.Sprintf("No %s transcript recorded; rerun transcription", label),
			nil,
		)
	}
	raw, err := whisperx.LoadSegments(path)
	if err != nil {
		return nil, services.Wrap(
			services.ErrTransient,
			"trimming",
			"load transcript",
			fmt.Sprintf("Failed to read %s transcript %s", label, filepath.Base(path)),
			err,
		)
	}
	return toBoundarySegments(raw), nil
}

// transcriptSimilarity scores how much speech the two transcripts share.
// Returns 0 when either side has no usable text.
func transcriptSimilarity(a, b []segments.Segment) float64 {
	return textutil.CosineSimilarity(
		textutil.NewFingerprint(joinTranscriptText(a)),
		textutil.NewFingerprint(joinTranscriptText(b)),
	)
}

func joinTranscriptText(segs []segments.Segment) string {
	var builder strings.Builder
	for _, seg := range segs {
		if seg.Text == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(seg.Text)
	}
	return builder.String()
}

// probeDuration reports the source container duration for the trim report,
// or 0 when ffprobe is unavailable or the file cannot be parsed.
func (t *Trimmer) probeDuration(ctx context.Context, logger *slog.Logger, path string) float64 {
	result, err := ffprobe.Inspect(ctx, t.cfg.FFprobeBinary(), path)
	if err != nil {
		logger.Debug("ffprobe inspection skipped", logging.Error(err))
		return 0
	}
	return result.DurationSeconds()
}

// toBoundarySegments converts WhisperX output into the selector's segment type.
func toBoundarySegments(raw []whisperx.Segment) []segments.Segment {
	out := make([]segments.Segment, 0, len(raw))
	for _, seg := range raw {
		out = append(out, segments.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	return out
}

func wrapSelectionError(err error) error {
	if errors.Is(err, segments.ErrNoSpeech) {
		return services.Wrap(
			services.ErrValidation,
			"trimming",
			"select cut",
			"No speech detected in the recording; verify the file and transcribe again",
			err,
		)
	}
	return services.Wrap(
		services.ErrTransient,
		"trimming",
		"select cut",
		"Cut selection failed",
		err,
	)
}

// combineWarnings merges both cuts' warning lists without duplicates,
// preserving order.
func combineWarnings(cuts ...segments.Cut) string {
	var merged []segments.Warning
	for _, cut := range cuts {
		for _, warning := range cut.Warnings {
			seen := false
			for _, have := range merged {
				if have == warning {
					seen = true
					break
				}
			}
			if !seen {
				merged = append(merged, warning)
			}
		}
	}
	return segments.Cut{Warnings: merged}.WarningList()
}

func (t *Trimmer) logWarnings(logger *slog.Logger, item *queue.Item, sourceCut, diarizedCut segments.Cut) {
	for _, warning := range segments.ParseWarnings(item.Warnings) {
		logging.WarnWithContext(logger, "trim window violation", string(warning),
			logging.String("base", item.Base),
			logging.Float64("cut_seconds", sourceCut.Seconds),
			logging.Float64("diarized_cut_seconds", diarizedCut.Seconds),
		)
	}
}

// cutAndPublish trims one recording into the work directory and publishes it
// through the export backend, returning the published destination.
func (t *Trimmer) cutAndPublish(ctx context.Context, sourcePath, workDir string, seconds float64) (string, error) {
	name := filepath.Base(sourcePath)
	local := filepath.Join(workDir, name)

	if err := t.cutter.Cut(ctx, sourcePath, local, seconds); err != nil {
		return "", services.Wrap(
			services.ErrExternalTool,
			"trimming",
			"ffmpeg cut",
			fmt.Sprintf("Failed to cut %s; inspect the ffmpeg output", name),
			err,
		)
	}

	dest, err := t.backend.Publish(ctx, local, name)
	if err != nil {
		return "", services.Wrap(
			services.ErrTransient,
			"trimming",
			"publish output",
			fmt.Sprintf("Failed to publish %s via %s", name, t.backend.Describe()),
			err,
		)
	}
	return dest, nil
}

func (t *Trimmer) persistProgress(ctx context.Context, logger *slog.Logger, item *queue.Item) {
	if t.store == nil {
		return
	}
	if err := t.store.Update(ctx, item); err != nil {
		logger.Warn("failed to persist trim progress", logging.Error(err))
	}
}

func (t *Trimmer) HealthCheck(ctx context.Context) stage.Health {
	const name = "trimmer"
	if t.cfg == nil {
		return stage.Unhealthy(name, "configuration unavailable")
	}
	if err := t.cfg.Window().Validate(); err != nil {
		return stage.Unhealthy(name, err.Error())
	}
	if t.backend == nil {
		return stage.Unhealthy(name, "export backend unavailable")
	}
	if _, err := exec.LookPath(t.cfg.FFmpegBinary()); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("ffmpeg binary %q not found", t.cfg.FFmpegBinary()))
	}
	return stage.Healthy(name)
}
