//go:build linux

package main

import (
	"github.com/galecloud/gale/pkg/utils"
)

func init() {
	// Kernel THP merging inflates the resident set of long lived executors.
	utils.DisableTHP()
}
