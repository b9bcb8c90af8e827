// Package pagesel decides which pages of a document a feature applies to.
package pagesel

import (
	"strconv"
	"strings"
)

// Mode names a page selection strategy.
type Mode string

const (
	ModeAll    Mode = "all"
	ModeFirst  Mode = "first"
	ModeLast   Mode = "last"
	ModeOdd    Mode = "odd"
	ModeEven   Mode = "even"
	ModeCustom Mode = "custom"
)

// Selection couples a mode with the raw custom-range string used by
// ModeCustom.
type Selection struct {
	Mode   Mode   `json:"page_selection"`
	Custom string `json:"custom_pages"`
}

// Applies reports whether the page at the given zero-based index of a
// document with total pages is selected. An unrecognized mode selects
// nothing: an unknown directive must never apply a feature to every page by
// accident.
func (s Selection) Applies(index, total int) bool {
	pno := index + 1
	switch s.Mode {
	case ModeAll:
		return true
	case ModeFirst:
		return pno == 1
	case ModeLast:
		return pno == total
	case ModeOdd:
		return pno%2 == 1
	case ModeEven:
		return pno%2 == 0
	case ModeCustom:
		return ParseCustomPages(s.Custom, total)[pno]
	}
	return false
}

// ParseCustomPages parses a comma-separated list of 1-based page numbers and
// a-b ranges into a membership set. Reversed ranges are normalized, pages
// outside [1, total] are dropped, and malformed tokens are skipped. An
// unparseable string yields an empty set.
func ParseCustomPages(s string, total int) map[int]bool {
	pages := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err1 := strconv.Atoi(strings.TrimSpace(lo))
			end, err2 := strconv.Atoi(strings.TrimSpace(hi))
			if err1 != nil || err2 != nil {
				continue
			}
			if start > end {
				start, end = end, start
			}
			for p := start; p <= end; p++ {
				if p >= 1 && p <= total {
					pages[p] = true
				}
			}
			continue
		}
		p, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		if p >= 1 && p <= total {
			pages[p] = true
		}
	}
	return pages
}
