//go:build !unix

package utils

func OnSignalDumpStacks() {
}
