//go:build darwin

package hashmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SystemMemory returns the machine's physical memory in bytes.
func SystemMemory() (uint64, error) {
	total, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, fmt.Errorf("sysctl hw.memsize: %w", err)
	}

	return total, nil
}
