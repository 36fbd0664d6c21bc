package transcription

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"log/slog"

	"sentrim/internal/config"
	"sentrim/internal/logging"
	"sentrim/internal/queue"
	"sentrim/internal/services"
	"sentrim/internal/services/whisperx"
	"sentrim/internal/stage"
)

// Transcriber manages WhisperX transcription of queued pairs.
type Transcriber struct {
	store  *queue.Store
	cfg    *config.Config
	logger *slog.Logger
	svc    *whisperx.Service
}

// NewTranscriber constructs the transcription handler.
func NewTranscriber(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Transcriber {
	svc := whisperx.NewService(whisperx.Config{
		Model:       cfg.WhisperX.Model,
		CUDAEnabled: cfg.WhisperX.CUDAEnabled,
		VADMethod:   cfg.WhisperX.VADMethod,
		HFToken:     cfg.WhisperX.HFToken,
	}, cfg.FFmpegBinary())
	return NewTranscriberWithService(cfg, store, logger, svc)
}

// NewTranscriberWithService allows injecting a custom WhisperX service (used for tests).
func NewTranscriberWithService(cfg *config.Config, store *queue.Store, logger *slog.Logger, svc *whisperx.Service) *Transcriber {
	t := &Transcriber{
		store: store,
		cfg:   cfg,
		svc:   svc,
	}
	t.SetLogger(logger)
	return t
}

func (t *Transcriber) SetLogger(logger *slog.Logger) {
	t.logger = logging.NewComponentLogger(logger, "transcriber")
}

func (t *Transcriber) Prepare(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, t.logger)
	item.SetProgress("Transcribing", "Preparing audio for transcription", 0)
	logger.Debug("starting transcription preparation")
	return nil
}

func (t *Transcriber) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, t.logger)

	if strings.TrimSpace(item.SourcePath) == "" {
		return services.Wrap(
			services.ErrValidation,
			"transcription",
			"validate inputs",
			"Queue item has no source recording; rescan the input directory",
			nil,
		)
	}

	workDir := filepath.Join(t.cfg.Paths.WorkDir, fmt.Sprintf("item-%d", item.ID))
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return services.Wrap(
			services.ErrConfiguration,
			"transcription",
			"ensure work dir",
			"Failed to create work directory; set work_dir to a writable path",
			err,
		)
	}

	sides := 1
	if item.HasPair() {
		sides = 2
	}

	logger.Info("starting transcription",
		logging.String("model", t.svc.Model()),
		logging.Bool("cuda", t.svc.CUDAEnabled()),
		logging.Int("recordings", sides),
	)

	sourceJSON, err := t.transcribeSide(ctx, item.SourcePath, workDir)
	if err != nil {
		return err
	}
	item.SourceTranscriptPath = sourceJSON
	item.SetProgress("Transcribing", "Original recording transcribed", 100/float64(sides))
	t.persistProgress(ctx, logger, item)

	if item.HasPair() {
		diarizedJSON, err := t.transcribeSide(ctx, item.DiarizedPath, workDir)
		if err != nil {
			return err
		}
		item.DiarizedTranscriptPath = diarizedJSON
	}

	item.SetProgress("Transcribed", "Transcripts ready", 100)
	logger.Info("transcription complete",
		logging.String("source_transcript", item.SourceTranscriptPath),
		logging.String("diarized_transcript", item.DiarizedTranscriptPath),
	)
	return nil
}

// transcribeSide converts one recording to WhisperX input and transcribes it,
// returning the JSON transcript path.
func (t *Transcriber) transcribeSide(ctx context.Context, sourcePath, workDir string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	wavPath := filepath.Join(workDir, stem+".wav")

	if err := t.svc.ExtractAudio(ctx, sourcePath, wavPath); err != nil {
		return "", services.Wrap(
			services.ErrExternalTool,
			"transcription",
			"extract audio",
			fmt.Sprintf("Failed to convert %s for WhisperX; check that ffmpeg can read the file", filepath.Base(sourcePath)),
			err,
		)
	}

	result, err := t.svc.TranscribeFile(ctx, wavPath, workDir, t.cfg.WhisperX.Language)
	if err != nil {
		return "", services.Wrap(
			services.ErrExternalTool,
			"transcription",
			"whisperx",
			fmt.Sprintf("WhisperX failed on %s; inspect the uvx output", filepath.Base(sourcePath)),
			err,
		)
	}
	if _, statErr := os.Stat(result.JSONPath); statErr != nil {
		return "", services.Wrap(
			services.ErrExternalTool,
			"transcription",
			"collect output",
			fmt.Sprintf("WhisperX produced no JSON transcript for %s", filepath.Base(sourcePath)),
			statErr,
		)
	}
	return result.JSONPath, nil
}

func (t *Transcriber) persistProgress(ctx context.Context, logger *slog.Logger, item *queue.Item) {
	if t.store == nil {
		return
	}
	if err := t.store.Update(ctx, item); err != nil {
		logger.Warn("failed to persist transcription progress", logging.Error(err))
	}
}

func (t *Transcriber) HealthCheck(ctx context.Context) stage.Health {
	const name = "transcriber"
	if t.cfg == nil {
		return stage.Unhealthy(name, "configuration unavailable")
	}
	if strings.TrimSpace(t.cfg.Paths.WorkDir) == "" {
		return stage.Unhealthy(name, "work directory not configured")
	}
	if _, err := exec.LookPath(whisperx.UVXCommand); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("%s not found in PATH", whisperx.UVXCommand))
	}
	if _, err := exec.LookPath(t.cfg.FFmpegBinary()); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("ffmpeg binary %q not found", t.cfg.FFmpegBinary()))
	}
	return stage.Healthy(name)
}
