// Package util provides utility functions for formatting and common operations.
package util

import (
	"fmt"
	"strings"
)

const (
	KiB = 1024
	MiB = KiB * 1024
	GiB = MiB * 1024
)

// FormatBytes formats bytes with appropriate binary units (B, KiB, MiB, GiB).
func FormatBytes(bytes uint64) string {
	bf := float64(bytes)
	switch {
	case bf >= GiB:
		return fmt.Sprintf("%.2f GiB", bf/GiB)
	case bf >= MiB:
		return fmt.Sprintf("%.2f MiB", bf/MiB)
	case bf >= KiB:
		return fmt.Sprintf("%.2f KiB", bf/KiB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatSizeMB formats a byte count as a decimal megabyte string, matching
// the file_size attribute shape reported by the metadata source ("50.20 MB").
func FormatSizeMB(bytes uint64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}

// ParseLeadingFloat parses the leading floating-point number of a string,
// ignoring any trailing text ("120.5s" parses as 120.5). Strings with no
// leading number parse as 0.
func ParseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit := false
	seenDot := false
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot:
			seenDot = true
		case (c == '+' || c == '-') && end == 0:
			// sign is only valid as the first character
		default:
			goto done
		}
		end++
	}
done:
	if !seenDigit {
		return 0
	}
	var f float64
	if _, err := fmt.Sscanf(s[:end], "%g", &f); err != nil {
		return 0
	}
	return f
}

// HumanizeKey renders a track attribute key for display by replacing
// underscores with spaces ("frame_rate_mode" becomes "frame rate mode").
func HumanizeKey(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
