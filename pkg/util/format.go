package util

import (
	"github.com/docker/go-units"
)

// FormatBytes renders a byte count in human-readable form (e.g. "1.5GB")
func FormatBytes(size int64) string {
	return units.HumanSize(float64(size))
}
