// Package model exposes the pre-trained risk classifier behind a small
// engine interface. Callers never see the artifact's internals; they hand in
// a feature vector and get class probabilities back.
package model

import "context"

// Output is a two-class result. ProbPositive + ProbNegative is 1 by
// construction.
type Output struct {
	Class        int
	ProbPositive float64
	ProbNegative float64
}

type Classifier interface {
	// Predict scores a single feature vector. The vector length must match
	// the artifact's feature schema.
	Predict(ctx context.Context, features []float64) (*Output, error)

	// NumFeatures reports the expected vector length.
	NumFeatures() int
}
