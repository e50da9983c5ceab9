package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wrenlabs/wren/internal/biz/usecase"
)

// CycleRunner runs one pipeline pass
type CycleRunner interface {
	RunCycle(ctx context.Context) (*usecase.CycleResult, error)
}

// PollingService drives the agent loop on a fixed interval. A cycle that
// outlasts the interval is never overlapped; the tick is skipped instead.
type PollingService struct {
	runner CycleRunner

	pollInterval time.Duration
	running      bool
	processing   atomic.Bool
	stopCh       chan struct{}
	wg           sync.WaitGroup
}

// NewPollingService creates a new polling service
func NewPollingService(runner CycleRunner, pollInterval time.Duration) *PollingService {
	if pollInterval <= 0 {
		pollInterval = 120 * time.Second
	}
	return &PollingService{
		runner:       runner,
		pollInterval: pollInterval,
		stopCh:       make(chan struct{}),
	}
}

// Start starts the polling loop
func (s *PollingService) Start() {
	if s.running {
		return
	}
	s.running = true
	s.wg.Add(1)
	go s.loop()
	fmt.Printf("[Polling] Started with poll interval %v\n", s.pollInterval)
}

// Stop stops the polling loop and waits for an in-flight cycle to finish
func (s *PollingService) Stop() {
	if !s.running {
		return
	}
	s.running = false
	close(s.stopCh)
	s.wg.Wait()
	fmt.Println("[Polling] Stopped")
}

func (s *PollingService) loop() {
	defer s.wg.Done()

	// Initial run
	s.runCycle()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runCycle()
		case <-s.stopCh:
			return
		}
	}
}

// runCycle runs one pass under the single-flight guard
func (s *PollingService) runCycle() {
	if !s.processing.CompareAndSwap(false, true) {
		fmt.Println("[Polling] Previous cycle still running, skipping tick")
		return
	}
	defer s.processing.Store(false)

	start := time.Now()
	result, err := s.runner.RunCycle(context.Background())
	if err != nil {
		fmt.Printf("[Polling] Cycle failed: %v\n", err)
		return
	}

	fmt.Printf("[Polling] Cycle %s done in %v: fetched=%d skipped=%d decided=%d declined=%d scheduled=%d executed=%d\n",
		result.RunID, time.Since(start).Round(time.Millisecond),
		result.Fetched, result.Skipped, result.Decided, result.Declined,
		result.Scheduled, len(result.Executed))
}
