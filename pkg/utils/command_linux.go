//go:build linux

package utils

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func procAttr() *syscall.SysProcAttr {
	// Run the process in its own group and make sure it is killed
	// if this process dies first.
	return &syscall.SysProcAttr{
		Setpgid:   true,
		Pgid:      0,
		Pdeathsig: unix.SIGKILL,
	}
}

// Kill the process together with its process group.
func (c *Command) Kill() error {
	return syscall.Kill(-c.Pid(), syscall.SIGKILL)
}
