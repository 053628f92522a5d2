// Package ratelimit provides a per-key token-bucket limiter used to
// throttle login attempts by username.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	maxIdle time.Duration
	done    chan struct{}
}

// NewKeyedLimiter allows burst attempts per key within window, refilling
// steadily afterwards. Idle keys are dropped by a background sweep.
func NewKeyedLimiter(burst int, window time.Duration) *KeyedLimiter {
	if burst < 1 {
		burst = 1
	}
	kl := &KeyedLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Every(window / time.Duration(burst)),
		burst:   burst,
		maxIdle: 10 * window,
		done:    make(chan struct{}),
	}
	go kl.cleanupStaleEntries(window)
	return kl
}

func (kl *KeyedLimiter) Allow(key string) bool {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	e, ok := kl.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

func (kl *KeyedLimiter) Stop() {
	close(kl.done)
}

func (kl *KeyedLimiter) cleanupStaleEntries(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-kl.done:
			return
		case <-ticker.C:
			kl.mu.Lock()
			cutoff := time.Now().Add(-kl.maxIdle)
			for key, e := range kl.entries {
				if e.lastSeen.Before(cutoff) {
					delete(kl.entries, key)
				}
			}
			kl.mu.Unlock()
		}
	}
}
