package mapevent

import (
	"regexp"
	"strconv"
	"strings"
)

// SearchOrder selects the order alternative pages are searched for a label.
type SearchOrder uint8

const (
	SearchAuto        SearchOrder = iota // same as SearchNewestFirst
	SearchNewestFirst                    // last authored page first
	SearchOldestFirst                    // first authored page first
)

// ParseSearchOrder maps a command argument to a SearchOrder. Unknown values
// fall back to SearchAuto.
func ParseSearchOrder(s string) SearchOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "newestfirst", "newest":
		return SearchNewestFirst
	case "oldestfirst", "oldest":
		return SearchOldestFirst
	}
	return SearchAuto
}

func (o SearchOrder) String() string {
	switch o {
	case SearchNewestFirst:
		return "newestFirst"
	case SearchOldestFirst:
		return "oldestFirst"
	}
	return "auto"
}

// LabelRef is a parsed label reference. Page is the 1-based pinned page, or
// 0 when the reference is not pinned.
type LabelRef struct {
	Page int
	Name string
}

var pinnedLabelRe = regexp.MustCompile(`^#(\d+):(.+)$`)

// ParseLabelRef parses "#N:name" or "name". The name is trimmed.
func ParseLabelRef(s string) LabelRef {
	if m := pinnedLabelRe.FindStringSubmatch(s); m != nil {
		page, err := strconv.Atoi(m[1])
		if err == nil && page > 0 {
			return LabelRef{Page: page, Name: strings.TrimSpace(m[2])}
		}
	}
	return LabelRef{Name: strings.TrimSpace(s)}
}

// Location is a resolved label position.
type Location struct {
	List  *CommandList
	Index int
}

// ResolveLabel finds ref among an entity's pages. A pinned page is checked
// first and wins outright. Otherwise current is checked, then every other
// page in order. The list identical to current is never searched twice.
func ResolveLabel(pages []*CommandList, current *CommandList, ref LabelRef, order SearchOrder) (Location, bool) {
	if ref.Page > 0 && ref.Page <= len(pages) {
		if list := pages[ref.Page-1]; list != nil {
			if i, ok := list.FindLabel(ref.Name); ok {
				return Location{List: list, Index: i}, true
			}
		}
	}

	if i, ok := current.FindLabel(ref.Name); ok {
		return Location{List: current, Index: i}, true
	}

	return SearchPages(pages, current, ref.Name, order)
}

// SearchPages searches every page except current for name, in order.
func SearchPages(pages []*CommandList, current *CommandList, name string, order SearchOrder) (Location, bool) {
	n := len(pages)
	for k := 0; k < n; k++ {
		p := k
		if order != SearchOldestFirst {
			p = n - 1 - k
		}
		list := pages[p]
		if list == nil || list == current {
			continue
		}
		if i, ok := list.FindLabel(name); ok {
			return Location{List: list, Index: i}, true
		}
	}
	return Location{}, false
}
