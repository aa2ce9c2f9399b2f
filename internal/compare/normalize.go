// Package compare scores the structural similarity of two SQL statements.
// Each statement is split into clauses, every clause is normalized into a
// set of comparable items, and the sets are scored with precision, recall
// and F1. The whole pipeline is pure: no shared state, safe to call
// concurrently for independent statement pairs.
package compare

import (
	"regexp"
	"sort"
	"strings"
)

// ItemSet is a set of normalized clause items. Ordering and duplicates
// are intentionally discarded.
type ItemSet map[string]struct{}

// NewItemSet builds an ItemSet from the given items.
func NewItemSet(items ...string) ItemSet {
	set := make(ItemSet, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// Contains reports whether the item is in the set.
func (s ItemSet) Contains(item string) bool {
	_, ok := s[item]
	return ok
}

// Items returns the set's contents as a sorted slice.
func (s ItemSet) Items() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

var (
	aliasPattern     = regexp.MustCompile(`(?i)\s+AS\s+\w+`)
	itemSplitPattern = regexp.MustCompile(`,\s*`)
	qualifierPattern = regexp.MustCompile(`^\w+\.`)
	functionPattern  = regexp.MustCompile(`\w+\((.*)\)`)
)

// Normalize canonicalizes a clause's text into a comparable item set.
//
// Aliases (AS <name>), a single leading table qualifier, and a single
// outer function wrapper are stripped from each comma-separated item, so
// two clauses that differ only in column order, aliasing or qualification
// normalize to the same set. The literal "*" is a sentinel for "all
// columns" and is never decomposed.
func Normalize(clauseText string) ItemSet {
	set := ItemSet{}
	if strings.TrimSpace(clauseText) == "" {
		return set
	}

	text := aliasPattern.ReplaceAllString(clauseText, "")

	if strings.TrimSpace(text) == "*" {
		set["*"] = struct{}{}
		return set
	}

	for _, item := range itemSplitPattern.Split(text, -1) {
		item = strings.TrimSpace(item)
		item = qualifierPattern.ReplaceAllString(item, "")
		// Unwrap one level of function call, keeping the arguments.
		item = functionPattern.ReplaceAllString(item, "$1")
		item = strings.TrimSpace(item)
		if item != "" {
			set[item] = struct{}{}
		}
	}

	return set
}
