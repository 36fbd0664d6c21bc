package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"sentrim/internal/logging"
	"sentrim/internal/pairing"
	"sentrim/internal/queue"
	"sentrim/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Discover recordings, then transcribe and trim the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			lock := flock.New(filepath.Join(cfg.Paths.LogDir, "sentrim.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another sentrim run is already in progress")
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release run lock", logging.Error(err))
				}
			}()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return ctx.withStore(func(store *queue.Store) error {
				enqueued, err := enqueueDiscovered(runCtx, cfg.Paths.InputDir, cfg.Pairing.OriginalMarker, cfg.Pairing.DiarizedMarker, store)
				if err != nil {
					return err
				}
				if enqueued > 0 {
					logger.Info("enqueued new recordings", logging.Int("count", enqueued))
				}

				mgr := workflow.NewManager(cfg, store, logger)
				if err := mgr.ConfigureDefaultStages(cfg, store, logger); err != nil {
					return err
				}

				summary, err := mgr.Run(runCtx)
				if err != nil {
					return err
				}

				logging.CleanupOldFiles(logger, cfg.Logging.RetentionDays,
					logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "trim-report-*.json"},
				)

				printSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
}

func enqueueDiscovered(ctx context.Context, inputDir, originalMarker, diarizedMarker string, store *queue.Store) (int, error) {
	pairs, err := pairing.Discover(inputDir, originalMarker, diarizedMarker)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, pair := range pairs {
		existing, err := store.FindBySourcePath(ctx, pair.Primary())
		if err != nil {
			return enqueued, err
		}
		if existing != nil {
			continue
		}
		diarized := ""
		if pair.Complete() {
			diarized = pair.DiarizedPath
		}
		if _, err := store.Enqueue(ctx, pair.Base, pair.Primary(), diarized); err != nil {
			return enqueued, err
		}
		enqueued++
	}
	return enqueued, nil
}
