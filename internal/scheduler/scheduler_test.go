package scheduler

import (
	"context"
	"testing"
	"time"

	mem "github.com/hevertoncelestino/controle-manutencao/internal/adapters/storage/memory"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/analytics"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/reports"
	"github.com/hevertoncelestino/controle-manutencao/internal/platform/logger"
)

type countingSink struct {
	writes chan struct{}
}

func (c *countingSink) Write(ctx context.Context, r reports.Report) (string, error) {
	select {
	case c.writes <- struct{}{}:
	default: // later ticks must not block shutdown
	}
	return r.Name + ".csv", nil
}

func newTestScheduler(interval time.Duration, sink reports.Sink) *Scheduler {
	store := mem.NewStore()
	loader := analytics.NewLoader(store.Vehicles(), store.Events())
	engine := analytics.NewEngine(logger.Nop())
	asm := reports.NewAssembler(loader, engine, sink, logger.Nop())
	return New(asm, interval, logger.Nop())
}

func TestRun_ExportsOnTick(t *testing.T) {
	sink := &countingSink{writes: make(chan struct{}, 1)}
	s := newTestScheduler(5*time.Millisecond, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-sink.writes:
	case <-time.After(2 * time.Second):
		t.Fatal("no export within two seconds")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on context cancel")
	}
}

func TestRun_DisabledWithoutInterval(t *testing.T) {
	sink := &countingSink{writes: make(chan struct{}, 1)}
	s := newTestScheduler(0, sink)

	// Returns immediately; nothing to wait on.
	s.Run(context.Background())

	select {
	case <-sink.writes:
		t.Fatal("disabled scheduler should not export")
	default:
	}
}
