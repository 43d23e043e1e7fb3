// Package encoder defines the interface to the pretrained vision-language
// encoder that produces unit-norm embedding vectors for images and text.
package encoder

import "context"

// Encoder converts images and text into embedding vectors.
//
// Both methods return an L2-normalized vector of fixed, model-defined
// dimensionality, so dot products between returned vectors are cosine
// similarities.
type Encoder interface {
	// EncodeImage converts the image at path into a vector embedding.
	EncodeImage(ctx context.Context, path string) ([]float32, error)

	// EncodeText converts text into a vector embedding.
	EncodeText(ctx context.Context, text string) ([]float32, error)

	// Close releases any resources held by the encoder.
	Close() error
}
