package testutils

import (
	"context"
	"fmt"

	"github.com/papercomputeco/lenscap/pkg/encoder"
)

// MockEncoder is a test encoder that returns predictable embeddings
type MockEncoder struct {
	// TextEmbeddings maps input text to the vector EncodeText returns.
	TextEmbeddings map[string][]float32

	// ImageEmbeddings maps image paths to the vector EncodeImage returns.
	ImageEmbeddings map[string][]float32

	// Default is returned for any input without an explicit mapping.
	Default []float32

	// FailOn causes either method to return an error when the input matches
	FailOn string

	// TextCalls counts EncodeText invocations, so suites can assert on
	// cache hit behavior.
	TextCalls int
}

func NewMockEncoder() *MockEncoder {
	return &MockEncoder{
		TextEmbeddings:  make(map[string][]float32),
		ImageEmbeddings: make(map[string][]float32),
		Default:         []float32{0.1, 0.2, 0.3},
	}
}

func (m *MockEncoder) EncodeText(_ context.Context, text string) ([]float32, error) {
	m.TextCalls++
	if m.FailOn != "" && text == m.FailOn {
		return nil, fmt.Errorf("mock encoding failure for: %s", text)
	}

	if emb, ok := m.TextEmbeddings[text]; ok {
		return emb, nil
	}
	return m.Default, nil
}

func (m *MockEncoder) EncodeImage(_ context.Context, path string) ([]float32, error) {
	if m.FailOn != "" && path == m.FailOn {
		return nil, fmt.Errorf("mock encoding failure for: %s", path)
	}

	if emb, ok := m.ImageEmbeddings[path]; ok {
		return emb, nil
	}
	return m.Default, nil
}

func (m *MockEncoder) Close() error {
	return nil
}

// Ensure MockEncoder implements encoder.Encoder
var _ encoder.Encoder = (*MockEncoder)(nil)
