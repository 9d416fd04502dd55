package transport

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTelemSchedulerFiresPeriodically(t *testing.T) {
	var count int64
	s := StartTelemScheduler(10*time.Millisecond, func() {
		atomic.AddInt64(&count, 1)
	})
	defer s.Close()

	time.Sleep(55 * time.Millisecond)
	s.Close()

	got := atomic.LoadInt64(&count)
	if got < 2 {
		t.Errorf("scheduler fired %d times in 55ms at a 10ms interval, want at least 2", got)
	}
}

func TestTelemSchedulerCloseIsIdempotent(t *testing.T) {
	s := StartTelemScheduler(time.Hour, func() {})
	s.Close()
	s.Close() // must not panic
}

func TestTelemSchedulerStopsAfterClose(t *testing.T) {
	var count int64
	s := StartTelemScheduler(5*time.Millisecond, func() {
		atomic.AddInt64(&count, 1)
	})
	time.Sleep(20 * time.Millisecond)
	s.Close()

	after := atomic.LoadInt64(&count)
	time.Sleep(30 * time.Millisecond)
	if atomic.LoadInt64(&count) != after {
		t.Errorf("scheduler kept firing after Close: before=%d after=%d", after, atomic.LoadInt64(&count))
	}
}
