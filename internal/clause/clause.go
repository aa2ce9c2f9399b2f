// Package clause decomposes SQL statements into their top-level clauses.
// It is a deliberately shallow, regex-boundary splitter: it recognizes the
// outermost clauses of a statement and makes no attempt to parse subqueries
// or CTE bodies. That is sufficient for structural diffing, where two
// statements are compared clause by clause rather than executed.
package clause

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies one top-level SQL clause.
type Kind string

// Recognized clause kinds.
const (
	KindSelect  Kind = "select"
	KindFrom    Kind = "from"
	KindWhere   Kind = "where"
	KindGroupBy Kind = "group_by"
	KindHaving  Kind = "having"
	KindOrderBy Kind = "order_by"
	KindLimit   Kind = "limit"
	KindJoin    Kind = "join"
	KindWith    Kind = "with"
)

// Kinds lists all recognized clause kinds in canonical order.
// Iteration over a Set should use this order for deterministic output.
var Kinds = []Kind{
	KindSelect,
	KindFrom,
	KindWhere,
	KindGroupBy,
	KindHaving,
	KindOrderBy,
	KindLimit,
	KindJoin,
	KindWith,
}

// ParseKind converts a string into a Kind. Unlike extraction, which
// degrades silently on malformed SQL, an unknown kind is a programmer
// error and is reported as such.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown clause kind: %q", s)
}

// Set maps each clause kind found in a statement to its raw text.
// A missing key means the clause is not present, which is distinct
// from a clause that is present but empty.
type Set map[Kind]string

// Has reports whether the clause kind is present in the set.
func (s Set) Has(k Kind) bool {
	_, ok := s[k]
	return ok
}

// Clause boundary patterns. Each clause's content runs from its keyword to
// the start of the next recognized keyword or end of string. Go's RE2 has
// no lookahead, so the boundary keyword is consumed by a non-capturing
// alternation while the clause body is the lazy captured group.
var clausePatterns = []struct {
	kind Kind
	re   *regexp.Regexp
}{
	{KindSelect, regexp.MustCompile(`SELECT\s+(?:DISTINCT\s+)?(.+?)(?:\s+FROM|\s*$)`)},
	{KindFrom, regexp.MustCompile(`FROM\s+(.+?)(?:\s+WHERE|\s+GROUP BY|\s+ORDER BY|\s+LIMIT|\s+HAVING|\s*$)`)},
	{KindWhere, regexp.MustCompile(`WHERE\s+(.+?)(?:\s+GROUP BY|\s+ORDER BY|\s+LIMIT|\s+HAVING|\s*$)`)},
	{KindGroupBy, regexp.MustCompile(`GROUP BY\s+(.+?)(?:\s+ORDER BY|\s+LIMIT|\s+HAVING|\s*$)`)},
	{KindHaving, regexp.MustCompile(`HAVING\s+(.+?)(?:\s+ORDER BY|\s+LIMIT|\s*$)`)},
	{KindOrderBy, regexp.MustCompile(`ORDER BY\s+(.+?)(?:\s+LIMIT|\s*$)`)},
	{KindLimit, regexp.MustCompile(`LIMIT\s+(\d+)`)},
	{KindJoin, regexp.MustCompile(`(?:LEFT |RIGHT |INNER |OUTER |CROSS |FULL )?JOIN\s+(.+?)(?:\s+ON|\s+WHERE|\s+GROUP|\s+ORDER|\s+LIMIT|\s*$)`)},
}

// withPattern matches the CTE body of a statement that starts with WITH,
// spanning from the WITH keyword to the first SELECT token.
var withPattern = regexp.MustCompile(`^WITH\s+(.+?)\s+SELECT`)

// Extract splits a SQL statement into its top-level clauses.
//
// The input is whitespace-collapsed and upper-cased before matching, so
// matching is case-insensitive by construction; callers that need the
// original casing must keep their own copy. Extraction never fails:
// malformed SQL simply yields a Set with fewer keys, and empty input
// yields an empty Set.
func Extract(sql string) Set {
	set := Set{}

	normalized := strings.ToUpper(strings.Join(strings.Fields(sql), " "))
	if normalized == "" {
		return set
	}

	for _, p := range clausePatterns {
		if m := p.re.FindStringSubmatch(normalized); m != nil {
			set[p.kind] = strings.TrimSpace(m[1])
		}
	}

	if strings.HasPrefix(normalized, "WITH ") {
		if m := withPattern.FindStringSubmatch(normalized); m != nil {
			set[KindWith] = strings.TrimSpace(m[1])
		}
	}

	return set
}
