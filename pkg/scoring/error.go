package scoring

import "errors"

// ErrDimensionMismatch is returned when the query vector and a label vector
// disagree on dimensionality. This is an integration error and always fails
// loudly.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")
