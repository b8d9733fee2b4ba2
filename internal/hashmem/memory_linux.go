//go:build linux

package hashmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SystemMemory returns the machine's physical memory in bytes.
func SystemMemory() (uint64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, fmt.Errorf("sysinfo: %w", err)
	}

	return uint64(info.Totalram) * uint64(info.Unit), nil
}
