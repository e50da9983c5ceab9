package xapi

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRequestQueue_FIFOOrdering(t *testing.T) {
	q := NewRequestQueue(8)
	defer q.Stop()

	var mu sync.Mutex
	var order []string
	record := func(name string, delay time.Duration) func(context.Context) error {
		return func(ctx context.Context) error {
			mu.Lock()
			order = append(order, name+"-start")
			mu.Unlock()
			time.Sleep(delay)
			mu.Lock()
			order = append(order, name+"-end")
			mu.Unlock()
			return nil
		}
	}

	var wg sync.WaitGroup
	ctx := context.Background()
	// T1 fast, T2 slow, T3 fast; submitted in order from one goroutine so
	// submission order is deterministic.
	tasks := []func(context.Context) error{
		record("t1", 5*time.Millisecond),
		record("t2", 50*time.Millisecond),
		record("t3", 5*time.Millisecond),
	}
	for _, task := range tasks {
		wg.Add(1)
		task := task
		go func() {
			defer wg.Done()
			_ = q.Do(ctx, task)
		}()
		time.Sleep(10 * time.Millisecond) // ensure submission order
	}
	wg.Wait()

	want := []string{"t1-start", "t1-end", "t2-start", "t2-end", "t3-start", "t3-end"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d events, got %v", len(want), order)
	}
	for i, ev := range want {
		if order[i] != ev {
			t.Fatalf("Position %d: expected %s, got %v", i, ev, order)
		}
	}
}

func TestRequestQueue_FailureIsolation(t *testing.T) {
	q := NewRequestQueue(8)
	defer q.Stop()

	ctx := context.Background()
	boom := errors.New("boom")

	err1 := q.Do(ctx, func(ctx context.Context) error { return boom })
	if !errors.Is(err1, boom) {
		t.Errorf("Expected first task's error, got %v", err1)
	}

	ran := false
	err2 := q.Do(ctx, func(ctx context.Context) error { ran = true; return nil })
	if err2 != nil {
		t.Errorf("Expected second task to succeed, got %v", err2)
	}
	if !ran {
		t.Error("Expected second task to run after a failed task")
	}
}

func TestRequestQueue_CanceledBeforeStart(t *testing.T) {
	q := NewRequestQueue(8)
	defer q.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := q.Do(ctx, func(ctx context.Context) error { ran = true; return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	// Give the worker a moment in case the job slipped into the channel.
	time.Sleep(10 * time.Millisecond)
	if ran {
		t.Error("Expected canceled task not to run")
	}
}

func TestRequestQueue_StoppedQueueRejects(t *testing.T) {
	q := NewRequestQueue(8)
	q.Stop()

	err := q.Do(context.Background(), func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrQueueStopped) {
		t.Errorf("Expected ErrQueueStopped, got %v", err)
	}
}
