package common

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(30 * time.Millisecond)
	for i := 0; i < 5; i++ {
		d.Do(func() { runs.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("expected a single run after the quiet period, got %d", got)
	}
}

func TestDebouncerStop(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(20 * time.Millisecond)
	d.Do(func() { runs.Add(1) })
	d.Stop()
	time.Sleep(60 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Errorf("stopped debouncer must not fire, got %d runs", got)
	}
}

func TestDebouncerRunsAgainAfterQuiet(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(10 * time.Millisecond)
	d.Do(func() { runs.Add(1) })
	time.Sleep(40 * time.Millisecond)
	d.Do(func() { runs.Add(1) })
	time.Sleep(40 * time.Millisecond)
	if got := runs.Load(); got != 2 {
		t.Errorf("separate quiet periods should each fire, got %d", got)
	}
}
