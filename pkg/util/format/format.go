package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	_  = iota // ignore first value
	KB = 1 << (10 * iota)
	MB
	GB
	TB
)

// FormatBytes formats bytes into human-readable units, avoiding .00 for whole numbers
func FormatBytes(b int64) string {
	val := float64(b)
	var unit string

	switch {
	case b >= TB:
		val /= float64(TB)
		unit = "TB"
	case b >= GB:
		val /= float64(GB)
		unit = "GB"
	case b >= MB:
		val /= float64(MB)
		unit = "MB"
	case b >= KB:
		val /= float64(KB)
		unit = "KB"
	default:
		return fmt.Sprintf("%dB", b)
	}

	// Use %.0f for whole numbers, %.2f for numbers with decimals
	if val == float64(int(val)) {
		return fmt.Sprintf("%.0f%s", val, unit)
	}
	return fmt.Sprintf("%.2f%s", val, unit)
}

// ParseBytes parses sizes such as "4096", "512B", "64KB", "64K", "64KiB" or "1.5MB".
// Units are powers of 1024.
func ParseBytes(s string) (uint64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})

	num, unit := s, ""
	if i >= 0 {
		num, unit = s[:i], strings.TrimSpace(s[i:])
	}

	var mult uint64
	switch strings.TrimSuffix(strings.TrimSuffix(unit, "IB"), "B") {
	case "":
		mult = 1
	case "K":
		mult = KB
	case "M":
		mult = MB
	case "G":
		mult = GB
	case "T":
		mult = TB
	default:
		return 0, fmt.Errorf("invalid size unit %q", unit)
	}

	if v, err := strconv.ParseUint(num, 10, 64); err == nil {
		if v > math.MaxUint64/mult {
			return 0, fmt.Errorf("size %q overflows 64 bits", s)
		}
		return v * mult, nil
	}

	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	// float64(math.MaxUint64) rounds up to 2^64
	b := f * float64(mult)
	if b >= float64(math.MaxUint64) {
		return 0, fmt.Errorf("size %q overflows 64 bits", s)
	}
	return uint64(b), nil
}
