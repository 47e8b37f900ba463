package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, limit int) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter, err := NewFixedWindowLimiter(rdb, "test:ratelimit", limit, time.Second)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	return limiter, mr
}

func TestFixedWindowLimiterBlocksOverQuota(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2)
	if !limiter.Allow("ip-1") {
		t.Fatalf("first request should pass")
	}
	if !limiter.Allow("ip-1") {
		t.Fatalf("second request should pass")
	}
	if limiter.Allow("ip-1") {
		t.Fatalf("third request should be blocked")
	}
}

func TestFixedWindowLimiterFailsClosed(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	mr.Close()
	if limiter.Allow("ip-1") {
		t.Fatalf("limiter should fail closed on redis errors")
	}
}

func TestFixedWindowLimiterIsolatesKeys(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1)
	if !limiter.Allow("login|1.2.3.4") {
		t.Fatalf("first key should pass")
	}
	if !limiter.Allow("login|5.6.7.8") {
		t.Fatalf("distinct key must have its own window")
	}
	if limiter.Allow("login|1.2.3.4") {
		t.Fatalf("exhausted key should be blocked")
	}
}

func TestFixedWindowLimiterRequiresClient(t *testing.T) {
	if limiter, err := NewFixedWindowLimiter(nil, "test:ratelimit", 1, time.Second); err == nil || limiter != nil {
		t.Fatalf("expected constructor error for nil client")
	}
}
