package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionLessThan(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected bool
	}{
		{"1.0.0", "1.0.1", true},
		{"1.0.0", "1.1.0", true},
		{"1.0.0", "2.0.0", true},
		{"1.0.1", "1.0.0", false},
		{"1.1.0", "1.0.0", false},
		{"2.0.0", "1.0.0", false},
		{"1.0.0", "1.0.0", false},
		{"1.0", "1.0.0", false},
		{"1.0", "1.0.1", true},
		{"1.0.0", "1.0.0.1", true},
		{"1.0.0.1", "1.0.0", false},
		{"", "1.0.0", true},
		{"rubbish", "1.0.0", true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, VersionLessThan(tc.a, tc.b),
			"VersionLessThan(%q, %q)", tc.a, tc.b)
	}
}
