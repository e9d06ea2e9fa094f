package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Size limits (in bytes)
const (
	MaxRequestSize = 64 * 1024 // request bodies on the JSON API
	MaxBodySize    = 8 << 20   // one application content body
)

// Length and range limits
const (
	MaxApplicationIDLength = 128
	MaxTitleLength         = 256
	MaxViewportDimension   = 16384
	MaxPointerCoordinate   = 1 << 20
)

// ApplicationIDPattern allows letters, digits, spaces, dots, hyphens and
// underscores. Ids are shown as window titles ("About Me").
var ApplicationIDPattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ._-]*$`)

// ValidateString validates a string field with length and content checks.
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if value == "" {
		return nil
	}

	if !utf8.ValidString(value) {
		return fmt.Errorf("%s is not valid UTF-8", fieldName)
	}
	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}
	return nil
}

// ValidateApplicationID validates an application id.
func ValidateApplicationID(id string) error {
	if err := ValidateString(id, "application id", 1, MaxApplicationIDLength, true); err != nil {
		return err
	}
	if strings.TrimSpace(id) != id {
		return fmt.Errorf("application id must not start or end with whitespace")
	}
	if !ApplicationIDPattern.MatchString(id) {
		return fmt.Errorf("application id contains invalid characters (letters, digits, spaces, dots, hyphens and underscores allowed)")
	}
	return nil
}

// ValidateTitle validates a window title.
func ValidateTitle(title string) error {
	return ValidateString(title, "title", 0, MaxTitleLength, false)
}

// ValidateViewport validates viewport dimensions.
func ValidateViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", width, height)
	}
	if width > MaxViewportDimension || height > MaxViewportDimension {
		return fmt.Errorf("viewport %dx%d exceeds %d pixels", width, height, MaxViewportDimension)
	}
	return nil
}

// ValidatePointer validates pointer coordinates. Pointers may sit outside
// the viewport while dragging, so negative values are fine.
func ValidatePointer(x, y int) error {
	if abs(x) > MaxPointerCoordinate || abs(y) > MaxPointerCoordinate {
		return fmt.Errorf("pointer (%d, %d) out of range", x, y)
	}
	return nil
}

// ValidateBodySize checks a content body against MaxBodySize.
func ValidateBodySize(n int64) error {
	if n > MaxBodySize {
		return fmt.Errorf("content size %d bytes exceeds maximum %d bytes", n, MaxBodySize)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
