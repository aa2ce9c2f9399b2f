package compare

// Scores holds precision, recall and F1 for one comparison, each in [0,1].
type Scores struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Score computes precision, recall and F1 between a predicted and a
// reference item set. Membership is exact-string equality after
// normalization; there is no fuzzy matching.
//
// Two empty sets agree perfectly and score 1 across the board ("nothing
// expected, nothing produced"). If exactly one side is empty, all three
// scores are 0.
func Score(predicted, reference ItemSet) Scores {
	if len(predicted) == 0 && len(reference) == 0 {
		return Scores{Precision: 1, Recall: 1, F1: 1}
	}
	if len(predicted) == 0 || len(reference) == 0 {
		return Scores{}
	}

	intersection := 0
	for item := range predicted {
		if reference.Contains(item) {
			intersection++
		}
	}

	precision := float64(intersection) / float64(len(predicted))
	recall := float64(intersection) / float64(len(reference))

	var f1 float64
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return Scores{Precision: precision, Recall: recall, F1: f1}
}
