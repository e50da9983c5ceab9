package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wrenlabs/wren/internal/biz/usecase"
)

type fakeRunner struct {
	calls   atomic.Int32
	block   chan struct{} // when set, RunCycle waits on it
	failErr error
}

func (r *fakeRunner) RunCycle(ctx context.Context) (*usecase.CycleResult, error) {
	r.calls.Add(1)
	if r.block != nil {
		<-r.block
	}
	if r.failErr != nil {
		return nil, r.failErr
	}
	return &usecase.CycleResult{RunID: "test"}, nil
}

func TestPollingService_SkipsOverlappingTicks(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{})}
	s := NewPollingService(runner, time.Hour)

	s.processing.Store(false)
	go s.runCycle()

	// Wait for the cycle to be in flight.
	deadline := time.After(time.Second)
	for runner.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("cycle never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	// Ticks arriving while the cycle runs must be no-ops.
	s.runCycle()
	s.runCycle()
	if got := runner.calls.Load(); got != 1 {
		t.Fatalf("overlapping ticks ran the cycle %d times", got)
	}

	close(runner.block)
}

func TestPollingService_GuardResetsAfterFailure(t *testing.T) {
	runner := &fakeRunner{failErr: errors.New("boom")}
	s := NewPollingService(runner, time.Hour)

	s.runCycle()
	if s.processing.Load() {
		t.Fatal("guard must reset after a failed cycle")
	}

	s.runCycle()
	if got := runner.calls.Load(); got != 2 {
		t.Fatalf("expected 2 runs, got %d", got)
	}
}

func TestPollingService_StartStop(t *testing.T) {
	runner := &fakeRunner{}
	s := NewPollingService(runner, time.Hour)

	s.Start()

	deadline := time.After(time.Second)
	for runner.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("initial cycle never ran")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	s.Stop()
	if got := runner.calls.Load(); got != 1 {
		t.Fatalf("expected only the initial cycle, got %d", got)
	}
}

func TestNewPollingService_DefaultInterval(t *testing.T) {
	s := NewPollingService(&fakeRunner{}, 0)
	if s.pollInterval != 120*time.Second {
		t.Fatalf("expected default interval, got %v", s.pollInterval)
	}
}
