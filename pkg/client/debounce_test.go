package client

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerFiresOnlyLast(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	var fired []string
	done := make(chan struct{}, 1)
	for _, q := range []string{"b", "bu", "bud", "budi"} {
		q := q
		d.Trigger(func() {
			mu.Lock()
			fired = append(fired, q)
			mu.Unlock()
			select {
			case done <- struct{}{}:
			default:
			}
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"budi"}, fired)
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	fired := make(chan struct{}, 1)

	d.Trigger(func() { fired <- struct{}{} })
	d.Cancel()

	select {
	case <-fired:
		t.Fatal("cancelled call fired")
	case <-time.After(40 * time.Millisecond):
	}
}

func TestDebouncerDefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultDebounce, NewDebouncer(0).delay)
}

func TestDebouncerFlushRunsPendingOnce(t *testing.T) {
	d := NewDebouncer(time.Hour)
	calls := 0

	d.Trigger(func() { calls++ })
	d.Flush()
	d.Flush()

	assert.Equal(t, 1, calls)
}
