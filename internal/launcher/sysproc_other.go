//go:build !windows

package launcher

import "os/exec"

// configureSysProcAttr is a no-op: there is no console window to hide.
func configureSysProcAttr(*exec.Cmd) {}
