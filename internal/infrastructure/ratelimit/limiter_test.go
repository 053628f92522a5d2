package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinBurst(t *testing.T) {
	kl := NewKeyedLimiter(3, time.Minute)
	defer kl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, kl.Allow("john_doe"), "attempt %d should pass", i+1)
	}
	assert.False(t, kl.Allow("john_doe"))
}

func TestKeysAreIndependent(t *testing.T) {
	kl := NewKeyedLimiter(1, time.Minute)
	defer kl.Stop()

	assert.True(t, kl.Allow("alice"))
	assert.False(t, kl.Allow("alice"))
	assert.True(t, kl.Allow("bob"))
}

func TestRefillOverTime(t *testing.T) {
	kl := NewKeyedLimiter(2, 100*time.Millisecond)
	defer kl.Stop()

	assert.True(t, kl.Allow("john_doe"))
	assert.True(t, kl.Allow("john_doe"))
	assert.False(t, kl.Allow("john_doe"))

	time.Sleep(120 * time.Millisecond)
	assert.True(t, kl.Allow("john_doe"))
}
