package schema

import "strings"

// Complexity buckets for a natural-language question.
const (
	ComplexitySimple  = "simple"
	ComplexityMedium  = "medium"
	ComplexityComplex = "complex"
)

// QuestionAnalysis is a heuristic read on a natural-language question:
// which tables it probably touches and whether joins or aggregations are
// likely. It guides prompt assembly and is not a semantic parse.
type QuestionAnalysis struct {
	Complexity         string   `json:"complexity"`
	LikelyTables       []string `json:"likely_tables"`
	LikelyJoinsNeeded  bool     `json:"likely_joins_needed"`
	LikelyAggregations bool     `json:"likely_aggregations"`
	SuggestedApproach  string   `json:"suggested_approach"`
}

var (
	joinIndicators = []string{"between", "related", "connection", "join", "across"}

	aggregationIndicators = []string{
		"average", "total", "sum", "count", "maximum", "minimum",
		"most", "least", "highest", "lowest",
	}

	complexIndicators = []string{
		"for each", "group by", "having", "more than", "less than",
		"before", "after", "between",
	}
)

// AnalyzeQuestion estimates the complexity of a natural-language question
// against this snapshot's tables.
func (s *Snapshot) AnalyzeQuestion(question string) QuestionAnalysis {
	analysis := QuestionAnalysis{
		Complexity:   ComplexitySimple,
		LikelyTables: []string{},
	}

	lower := strings.ToLower(question)

	for i := range s.Tables {
		if strings.Contains(lower, strings.ToLower(s.Tables[i].Name)) {
			analysis.LikelyTables = append(analysis.LikelyTables, s.Tables[i].Name)
		}
	}

	if containsAny(lower, joinIndicators) {
		analysis.LikelyJoinsNeeded = true
		analysis.Complexity = ComplexityMedium
	}
	if containsAny(lower, aggregationIndicators) {
		analysis.LikelyAggregations = true
		if analysis.Complexity == ComplexitySimple {
			analysis.Complexity = ComplexityMedium
		}
	}
	if containsAny(lower, complexIndicators) {
		analysis.Complexity = ComplexityComplex
	}

	switch {
	case analysis.Complexity == ComplexityComplex:
		analysis.SuggestedApproach = "Complex query with joins, aggregations, and filters."
	case analysis.LikelyAggregations:
		analysis.SuggestedApproach = "Use aggregation functions with possible GROUP BY."
	case analysis.LikelyJoinsNeeded:
		analysis.SuggestedApproach = "Join tables with appropriate relationships."
	default:
		analysis.SuggestedApproach = "Simple SELECT query with filters."
	}

	return analysis
}

func containsAny(s string, indicators []string) bool {
	for _, indicator := range indicators {
		if strings.Contains(s, indicator) {
			return true
		}
	}
	return false
}
