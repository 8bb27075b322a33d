package common

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateOutputFormat checks a requested report format against the
// formats a command accepts. Screening reports support the full set
// from app.supportedFormats; single-record commands accept a subset.
// An empty accepted list means no restriction.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format %q, supported formats: %s",
		format, strings.Join(supportedFormats, ", "))
}

// GetSupportedFormats returns the report formats for shell completion
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
