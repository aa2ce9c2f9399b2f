package clause

import (
	"regexp"
	"strings"
)

// Table extraction runs its own case-insensitive patterns over the
// statement instead of reusing Extract's upper-cased output, so that
// table names keep their original casing.
var (
	fromTextPattern  = regexp.MustCompile(`(?i)FROM\s+(.+?)(?:\s+WHERE|\s+GROUP BY|\s+ORDER BY|\s+LIMIT|\s+HAVING|\s*$)`)
	joinCutPattern   = regexp.MustCompile(`(?i)\s+(?:(?:LEFT|RIGHT|INNER|OUTER|CROSS|FULL)\s+)?JOIN\s+`)
	joinTablePattern = regexp.MustCompile(`(?i)JOIN\s+(\w+)`)
	commaSplit       = regexp.MustCompile(`,\s*`)
)

// Tables returns the table names referenced by a statement, in order of
// first appearance. Aliases are dropped; duplicates are kept so callers
// can see every reference. A statement without a FROM clause yields an
// empty, non-nil slice.
func Tables(sql string) []string {
	tables := []string{}

	normalized := strings.Join(strings.Fields(sql), " ")
	if normalized == "" {
		return tables
	}

	// FROM-clause tables: split on commas, cut each piece at the first
	// embedded JOIN keyword, then take the first token as the table name.
	if m := fromTextPattern.FindStringSubmatch(normalized); m != nil {
		for _, piece := range commaSplit.Split(m[1], -1) {
			if loc := joinCutPattern.FindStringIndex(piece); loc != nil {
				piece = piece[:loc[0]]
			}
			if fields := strings.Fields(piece); len(fields) > 0 {
				tables = append(tables, fields[0])
			}
		}
	}

	// Joined tables: every JOIN <identifier> in the statement, any join kind.
	for _, m := range joinTablePattern.FindAllStringSubmatch(normalized, -1) {
		tables = append(tables, m[1])
	}

	return tables
}
