package pagelayout

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePages parses a page selection: a comma separated list of 1-indexed
// page numbers and inclusive ranges, like "1,3,5-7". Empty entries are
// ignored and an empty string selects nothing.
//
// Example:
//
//	pages, err := pagelayout.ParsePages("1,3-4")
//	doc, _, err := pagelayout.Open("paper.pdf").Pages(pages...).Document(ctx)
func ParsePages(val string) ([]int, error) {
	var pages []int

	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")

		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}

		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil || end < start {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}

		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
	}

	return pages, nil
}
