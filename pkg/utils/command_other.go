//go:build !linux

package utils

import "syscall"

func procAttr() *syscall.SysProcAttr {
	return nil
}

func (c *Command) Kill() error {
	return c.cmd.Process.Kill()
}
