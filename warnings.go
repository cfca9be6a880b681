package pagelayout

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal issue found while analyzing a page
type Warning struct {
	Page    int    // 1-indexed page number, 0 for the whole document
	Message string // Human-readable description
}

// String formats the warning for display
func (w Warning) String() string {
	if w.Page == 0 {
		return w.Message
	}
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

// FormatWarnings joins warnings into one line each
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
