package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sizeRe = regexp.MustCompile(`^(0|[1-9][0-9]*) ?([KMGTPE]i?)?B?$`)

// Multipliers for size suffixes. Binary suffixes (Ki, Mi, ...) use
// powers of 1024, decimal suffixes powers of 1000.
var sizeUnits = map[string]int64{
	"K":  1e3,
	"M":  1e6,
	"G":  1e9,
	"T":  1e12,
	"P":  1e15,
	"E":  1e18,
	"Ki": 1 << 10,
	"Mi": 1 << 20,
	"Gi": 1 << 30,
	"Ti": 1 << 40,
	"Pi": 1 << 50,
	"Ei": 1 << 60,
}

// ParseSize converts a human readable size such as "100MiB" or "1GB"
// to a byte count.
func ParseSize(size string) (int64, error) {
	parts := sizeRe.FindStringSubmatch(strings.TrimSpace(size))
	if parts == nil {
		return 0, Errorf(ErrParse, "invalid size: %q", size)
	}

	value, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, Errorf(ErrParse, "invalid size: %q", size)
	}

	if unit := parts[2]; unit != "" {
		value *= sizeUnits[unit]
	}

	return value, nil
}

// HumanByteSize renders a byte count with a binary suffix, using more
// decimals the larger the unit.
func HumanByteSize(byteSize int64) string {
	units := []struct {
		name      string
		precision int
	}{
		{"B", 0},
		{"KiB", 0},
		{"MiB", 1},
		{"GiB", 2},
		{"TiB", 2},
		{"PiB", 2},
		{"EiB", 2},
	}

	size := float64(byteSize)
	index := 0

	for size > 1024 {
		size /= 1024
		index += 1
	}

	return fmt.Sprintf("%.*f%s", units[index].precision, size, units[index].name)
}
