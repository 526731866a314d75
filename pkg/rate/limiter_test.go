package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoLimiter(t *testing.T) {
	l := &NoLimiter{}
	for i := 0; i < 10000; i++ {
		assert.True(t, l.Allow(""))
	}
}

func TestLocalRateLimiter(t *testing.T) {
	l := NewLocalRateLimiter(1, 2)

	for i := 0; i < 2; i++ {
		assert.True(t, l.Allow("getProgramAccounts"))
	}
	assert.False(t, l.Allow("getProgramAccounts"))

	// Keys are limited independently.
	assert.True(t, l.Allow("getLatestBlockhash"))
}

func TestLocalRateLimiter_MinimumBurst(t *testing.T) {
	l := NewLocalRateLimiter(1, 0)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}
