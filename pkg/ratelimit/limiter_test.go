package ratelimit

import (
	"testing"
	"time"
)

func TestTokenBucket(t *testing.T) {
	tb := NewTokenBucket(5, time.Second)

	// Test initial capacity
	for i := 0; i < 5; i++ {
		if !tb.Allow() {
			t.Errorf("Expected token %d to be available", i+1)
		}
	}

	// Test exhaustion
	if tb.Allow() {
		t.Error("Expected no more tokens to be available")
	}

	// Test refill after waiting
	time.Sleep(time.Second + 100*time.Millisecond)
	if !tb.Allow() {
		t.Error("Expected tokens to be refilled after waiting")
	}

	// Test reset
	tb.tokens = 0
	tb.Reset()
	if tb.tokens != tb.capacity {
		t.Error("Expected tokens to be reset to capacity")
	}
}

func TestDualAllowsWithinBothWindows(t *testing.T) {
	d := NewDual(3, 10)

	for i := 0; i < 3; i++ {
		if !d.Allow() {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	// Short window exhausted
	if d.Allow() {
		t.Error("Expected request to be denied when short window is full")
	}
}

func TestDualLongWindowBinds(t *testing.T) {
	// Long window smaller than short window so it binds first
	d := NewDual(10, 2)

	if !d.Allow() || !d.Allow() {
		t.Fatal("Expected first two requests to be allowed")
	}
	if d.Allow() {
		t.Error("Expected request to be denied when long window is full")
	}
}

func TestDualRefundsLongWindowOnShortDenial(t *testing.T) {
	d := NewDual(1, 5)

	if !d.Allow() {
		t.Fatal("Expected first request to be allowed")
	}

	// Short window is now empty; denial must not consume long-window capacity.
	for i := 0; i < 3; i++ {
		if d.Allow() {
			t.Fatal("Expected denial while short window is empty")
		}
	}

	long := d.long.(*TokenBucket)
	long.mu.Lock()
	remaining := long.tokens
	long.mu.Unlock()
	if remaining != 4 {
		t.Errorf("Expected 4 long-window tokens remaining, got %d", remaining)
	}
}

func TestDualReset(t *testing.T) {
	d := NewDual(1, 1)
	if !d.Allow() {
		t.Fatal("Expected first request to be allowed")
	}
	if d.Allow() {
		t.Fatal("Expected second request to be denied")
	}

	d.Reset()
	if !d.Allow() {
		t.Error("Expected request to be allowed after reset")
	}
}
