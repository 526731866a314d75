package osutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/pbnjay/memory"
)

// cgroup v1 reports this when memory is not restricted.
const unrestrictedMemoryLimit = 9223372036854771712

var memoryLimitLocations = []string{
	"/sys/fs/cgroup/memory.max",                   // cgroup v2
	"/sys/fs/cgroup/memory/memory.limit_in_bytes", // cgroup v1
}

// GetTotalMemory returns the total available memory size. The call is
// container-aware.
func GetTotalMemory() uint64 {
	totalMemory := memory.TotalMemory()

	for _, location := range memoryLimitLocations {
		raw, err := os.ReadFile(location)
		if err != nil {
			continue
		}
		if limit, ok := parseMemoryLimit(string(raw)); ok && (totalMemory == 0 || limit < totalMemory) {
			totalMemory = limit
		}
		break
	}
	return totalMemory
}

// CapToMemoryShare returns requested, lowered to 1/divisor of the total
// available memory when that is smaller. Unknown memory sizes leave requested
// unchanged.
func CapToMemoryShare(requested, divisor uint64) uint64 {
	return capToShare(requested, GetTotalMemory(), divisor)
}

func capToShare(requested, total, divisor uint64) uint64 {
	if total == 0 || divisor == 0 {
		return requested
	}
	if share := total / divisor; share < requested {
		return share
	}
	return requested
}

func parseMemoryLimit(raw string) (uint64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "max" {
		return 0, false
	}

	limit, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || limit == 0 || limit == unrestrictedMemoryLimit {
		return 0, false
	}
	return limit, true
}
