// Package tagger runs the zero-shot tagging pipeline: image embedding →
// similarity scoring → tag selection → caption assembly → tag merge.
package tagger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/papercomputeco/lenscap/pkg/caption"
	"github.com/papercomputeco/lenscap/pkg/encoder"
	"github.com/papercomputeco/lenscap/pkg/scoring"
	"github.com/papercomputeco/lenscap/pkg/vocab"
)

// Tagger holds the encoder and the precomputed label vectors.
// Construct once per process; Tag is a pure computation over its inputs.
type Tagger struct {
	enc          encoder.Encoder
	labels       []string
	labelVectors [][]float32
	opts         scoring.SelectOpts
	logger       *zap.Logger
}

// New creates a Tagger over the candidate vocabulary. labelVectors must be
// in vocabulary order (index i embeds vocab.Labels()[i]).
func New(enc encoder.Encoder, labelVectors [][]float32, opts scoring.SelectOpts, logger *zap.Logger) (*Tagger, error) {
	labels := vocab.Labels()
	if len(labelVectors) != len(labels) {
		return nil, fmt.Errorf("expected %d label vectors, got %d", len(labels), len(labelVectors))
	}

	return &Tagger{
		enc:          enc,
		labels:       labels,
		labelVectors: labelVectors,
		opts:         opts,
		logger:       logger,
	}, nil
}

// Tag embeds the image at path and returns its caption and merged tag set.
func (t *Tagger) Tag(ctx context.Context, path string) (*caption.Result, error) {
	queryVec, err := t.enc.EncodeImage(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to embed image: %w", err)
	}

	scores, err := scoring.Scores(queryVec, t.labelVectors)
	if err != nil {
		return nil, err
	}

	selected := scoring.Select(t.labels, scores, t.opts)

	tags := make([]string, len(selected))
	for i, s := range selected {
		tags[i] = s.Label
	}

	if t.logger.Core().Enabled(zap.DebugLevel) {
		for _, s := range selected {
			t.logger.Debug("selected tag",
				zap.String("label", s.Label),
				zap.Float64("score", s.Score),
			)
		}
	}

	return caption.Compose(tags), nil
}
