package inference

import "errors"

// ErrIncompatibleModel is returned when an artifact cannot be materialized
// even through the fallback load path. Callers should treat this as a
// request-level failure and fall back to non-ML pricing.
var ErrIncompatibleModel = errors.New("inference: model incompatible, use fallback prediction")

// Predictor is the opaque inference capability: a fixed-length feature
// vector in, a scalar prediction out. Implementations must be safe for
// concurrent use.
type Predictor interface {
	Predict(features []float32) (float32, error)
}

// Loader materializes an artifact into a Predictor. LoadFallback is the
// tolerant variant tried after Load fails on partially incompatible
// artifacts.
type Loader interface {
	Load(path string) (Predictor, error)
	LoadFallback(path string) (Predictor, error)
}
