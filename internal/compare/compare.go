package compare

import (
	"github.com/leapstack-labs/sqljudge/internal/clause"
)

// ComponentMetrics holds the scores for one clause kind together with the
// normalized item sets they were computed from.
type ComponentMetrics struct {
	Scores
	PredictedItems []string `json:"predicted_items"`
	ReferenceItems []string `json:"reference_items"`
}

// Report is the result of comparing a candidate statement against a
// reference statement. It is built once per comparison and never mutated
// after return.
type Report struct {
	// Components maps each clause kind present in either statement to its
	// metrics. Kinds present in neither statement are omitted.
	Components map[clause.Kind]ComponentMetrics `json:"component_metrics"`

	// Overall is the unweighted arithmetic mean of the per-clause scores
	// across all clause kinds in Components.
	Overall Scores `json:"overall"`

	// TableSimilarity is the Jaccard similarity of the two statements'
	// referenced table sets, 0 when both are empty.
	TableSimilarity float64 `json:"table_similarity"`

	// PredictedTables and ReferenceTables keep the raw extraction output:
	// order of first appearance, duplicates included.
	PredictedTables []string `json:"predicted_tables"`
	ReferenceTables []string `json:"reference_tables"`
}

// Compare scores the structural similarity of a candidate statement
// against a reference statement. It never fails: unparsable SQL degrades
// to missing clauses and zero scores, so batch callers can compare many
// statements without aborting a run.
func Compare(predictedSQL, referenceSQL string) *Report {
	predicted := clause.Extract(predictedSQL)
	reference := clause.Extract(referenceSQL)

	report := &Report{
		Components:      make(map[clause.Kind]ComponentMetrics),
		PredictedTables: clause.Tables(predictedSQL),
		ReferenceTables: clause.Tables(referenceSQL),
	}

	var sum Scores
	for _, kind := range clause.Kinds {
		if !predicted.Has(kind) && !reference.Has(kind) {
			continue
		}

		predictedSet := Normalize(predicted[kind])
		referenceSet := Normalize(reference[kind])
		scores := Score(predictedSet, referenceSet)

		report.Components[kind] = ComponentMetrics{
			Scores:         scores,
			PredictedItems: predictedSet.Items(),
			ReferenceItems: referenceSet.Items(),
		}

		sum.Precision += scores.Precision
		sum.Recall += scores.Recall
		sum.F1 += scores.F1
	}

	if n := len(report.Components); n > 0 {
		report.Overall = Scores{
			Precision: sum.Precision / float64(n),
			Recall:    sum.Recall / float64(n),
			F1:        sum.F1 / float64(n),
		}
	}

	report.TableSimilarity = jaccard(report.PredictedTables, report.ReferenceTables)

	return report
}

// jaccard computes intersection-over-union of the unique names in each
// list, 0 when the union is empty.
func jaccard(a, b []string) float64 {
	setA := NewItemSet(a...)
	setB := NewItemSet(b...)

	intersection := 0
	union := len(setB)
	for name := range setA {
		if setB.Contains(name) {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
