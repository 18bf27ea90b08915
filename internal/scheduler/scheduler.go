// Package scheduler runs the periodic fleet snapshot export. It is strictly
// best-effort: a failed run is logged and the next tick tries again; nothing
// here can affect ledger writes or foreground reads.
package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/reports"
	"github.com/hevertoncelestino/controle-manutencao/internal/platform/logger"
)

type Scheduler struct {
	asm      *reports.Assembler
	interval time.Duration
	log      logger.Logger
}

func New(asm *reports.Assembler, interval time.Duration, log logger.Logger) *Scheduler {
	return &Scheduler{
		asm:      asm,
		interval: interval,
		log:      log,
	}
}

// Run blocks until ctx is done. Call it from its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info("snapshot scheduler disabled", nil)
		return
	}

	t := time.NewTicker(s.interval)
	defer t.Stop()

	s.log.Info("snapshot scheduler started", map[string]any{
		"interval": s.interval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			s.log.Info("snapshot scheduler stopped", nil)
			return
		case <-t.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runID := uuid.NewString()
	log := s.log.With(map[string]any{"run_id": runID})

	art, err := s.asm.Fleet(ctx)
	if err != nil {
		log.Error("snapshot export failed", map[string]any{"error": err.Error()})
		return
	}

	log.Info("snapshot exported", map[string]any{
		"artifact_id": art.ID,
		"filename":    art.Filename,
	})
}
