//go:build !linux && !darwin

package hashmem

import (
	"fmt"
	"runtime"
)

// SystemMemory is not supported on this platform.
func SystemMemory() (uint64, error) {
	return 0, fmt.Errorf("system memory probe not supported on %s", runtime.GOOS)
}
