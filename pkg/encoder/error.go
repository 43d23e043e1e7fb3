package encoder

import "errors"

var (
	// ErrEncoding is returned when the encoder fails to produce an embedding.
	ErrEncoding = errors.New("encoding failed")

	// ErrUnsupported is returned when a provider does not implement the
	// requested modality (e.g. image embedding on a text-only provider).
	ErrUnsupported = errors.New("modality not supported by provider")
)
