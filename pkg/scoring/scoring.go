// Package scoring converts a query embedding and a set of label embeddings
// into a probability distribution, and selects the top-scoring labels as tags.
package scoring

import (
	"fmt"
	"math"
	"sort"
)

// LogitScale sharpens the cosine-similarity distribution before softmax.
// Raw cosine similarities across a vocabulary cluster too close together
// to rank meaningfully.
const LogitScale = 100.0

// ScoredLabel pairs a vocabulary label with its softmax probability.
type ScoredLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Scores computes a softmax probability distribution over labelVectors for
// the given query vector. All vectors must be unit-norm and share the query's
// dimensionality; a mismatch returns ErrDimensionMismatch rather than
// truncating or padding.
//
// The softmax subtracts the max logit before exponentiating, so the scaled
// logits cannot overflow.
func Scores(query []float32, labelVectors [][]float32) ([]float64, error) {
	if len(labelVectors) == 0 {
		return []float64{}, nil
	}

	logits := make([]float64, len(labelVectors))
	maxLogit := math.Inf(-1)

	for i, lv := range labelVectors {
		if len(lv) != len(query) {
			return nil, fmt.Errorf("%w: query has %d dimensions, label vector %d has %d",
				ErrDimensionMismatch, len(query), i, len(lv))
		}

		var dot float64
		for j := range query {
			dot += float64(query[j]) * float64(lv[j])
		}

		logits[i] = LogitScale * dot
		if logits[i] > maxLogit {
			maxLogit = logits[i]
		}
	}

	var sum float64
	for i, l := range logits {
		logits[i] = math.Exp(l - maxLogit)
		sum += logits[i]
	}

	for i := range logits {
		logits[i] /= sum
	}
	return logits, nil
}

// SelectOpts are the stopping-rule parameters for Select.
type SelectOpts struct {
	// TopK is the hard cap on selected tags.
	TopK int

	// MinScore is the soft cutoff: once MinForced tags are collected,
	// the first candidate scoring strictly below MinScore stops selection.
	MinScore float64

	// MinForced is the number of tags always selected regardless of score
	// (bounded by the vocabulary size).
	MinForced int
}

// DefaultSelectOpts mirrors the tuned production values.
func DefaultSelectOpts() SelectOpts {
	return SelectOpts{
		TopK:      12,
		MinScore:  0.03,
		MinForced: 5,
	}
}

// Select ranks labels by score descending and applies the combined
// threshold/count stopping rule. Equal scores keep their vocabulary order;
// a candidate scoring exactly MinScore is kept.
func Select(labels []string, scores []float64, opts SelectOpts) []ScoredLabel {
	n := len(labels)
	if len(scores) < n {
		n = len(scores)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	selected := make([]ScoredLabel, 0, opts.TopK)
	for _, idx := range order {
		if len(selected) >= opts.TopK {
			break
		}
		if scores[idx] < opts.MinScore && len(selected) >= opts.MinForced {
			break
		}
		selected = append(selected, ScoredLabel{Label: labels[idx], Score: scores[idx]})
	}
	return selected
}
