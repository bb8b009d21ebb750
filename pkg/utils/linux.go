//go:build linux

package utils

import (
	"github.com/galecloud/gale/pkg/log"
	"golang.org/x/sys/unix"
)

// DisableTHP opts the process out of transparent huge pages.
func DisableTHP() {
	log.Info("Disabling transparent huge pages")
	if err := unix.Prctl(unix.PR_SET_THP_DISABLE, 1, 0, 0, 0); err != nil {
		log.Warn("Unable to disable transparent huge pages:", err)
	}
}
