package utils

import (
	"strconv"
	"strings"
)

// VersionLessThan reports whether version a orders before version b.
// Versions are dotted numeric strings such as "1.2.3". Missing or
// non-numeric components compare as zero, so "1.0" equals "1.0.0" and
// a malformed version never panics.
func VersionLessThan(a, b string) bool {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	for i := 0; i < len(aParts) || i < len(bParts); i++ {
		av := versionComponent(aParts, i)
		bv := versionComponent(bParts, i)

		if av != bv {
			return av < bv
		}
	}

	return false
}

func versionComponent(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}

	value, _ := strconv.Atoi(parts[i])
	return value
}
