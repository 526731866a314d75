package osutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMemoryLimit(t *testing.T) {
	limit, ok := parseMemoryLimit("536870912\n")
	assert.True(t, ok)
	assert.EqualValues(t, 536870912, limit)

	for _, raw := range []string{"max\n", "9223372036854771712", "0", "garbage", ""} {
		_, ok := parseMemoryLimit(raw)
		assert.False(t, ok, raw)
	}
}

func TestCapToShare(t *testing.T) {
	assert.EqualValues(t, 8<<20, capToShare(8<<20, 1<<30, 32))
	assert.EqualValues(t, 1<<20, capToShare(8<<20, 32<<20, 32))
	assert.EqualValues(t, 8<<20, capToShare(8<<20, 0, 32))
	assert.EqualValues(t, 8<<20, capToShare(8<<20, 1<<20, 0))
}

func TestGetTotalMemory(t *testing.T) {
	assert.NotZero(t, GetTotalMemory())
}
