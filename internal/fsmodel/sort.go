package fsmodel

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey is a detail-view column the listing can be ordered by.
type SortKey int

const (
	SortName SortKey = iota
	SortSize
	SortType
	SortModified
)

// SortKeys lists the columns in display order.
var SortKeys = []SortKey{SortName, SortSize, SortType, SortModified}

func (k SortKey) String() string {
	switch k {
	case SortName:
		return "Name"
	case SortSize:
		return "Size"
	case SortType:
		return "Type"
	case SortModified:
		return "Modified"
	default:
		return "Unknown"
	}
}

// ParseSortKey maps a column name back to its key, defaulting to SortName.
func ParseSortKey(s string) SortKey {
	for _, k := range SortKeys {
		if strings.EqualFold(k.String(), s) {
			return k
		}
	}
	return SortName
}

// Sort orders entries in place: the parent link first, then directories,
// then files, each group by key. Name is the tie-breaker.
func Sort(entries []Entry, key SortKey, descending bool) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.IsParent != b.IsParent {
			if a.IsParent {
				return -1
			}
			return 1
		}
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		c := compareBy(a, b, key)
		if c == 0 && key != SortName {
			c = compareBy(a, b, SortName)
		}
		if descending {
			c = -c
		}
		return c
	})
}

func compareBy(a, b Entry, key SortKey) int {
	switch key {
	case SortSize:
		return cmp.Compare(a.Size, b.Size)
	case SortType:
		return cmp.Compare(strings.ToLower(a.Type()), strings.ToLower(b.Type()))
	case SortModified:
		return a.ModTime.Compare(b.ModTime)
	default:
		if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	}
}
