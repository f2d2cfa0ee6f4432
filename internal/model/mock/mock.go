// Package mock provides a deterministic classifier for tests and local
// development (MODEL_PATH=mock). The positive probability is a smooth
// function of the input so threshold behavior can be exercised end to end.
package mock

import (
	"context"
	"fmt"
	"math"

	"github.com/unimindapp/unimind-backend/internal/model"
)

type Classifier struct {
	Features int

	// FixedProb, when non-nil, pins ProbPositive regardless of input.
	FixedProb *float64
}

func New(features int) *Classifier {
	return &Classifier{Features: features}
}

func (c *Classifier) NumFeatures() int { return c.Features }

func (c *Classifier) Predict(_ context.Context, features []float64) (*model.Output, error) {
	if len(features) != c.Features {
		return nil, fmt.Errorf("expected %d features, got %d", c.Features, len(features))
	}

	var p float64
	if c.FixedProb != nil {
		p = *c.FixedProb
	} else {
		var sum float64
		for _, f := range features {
			sum += f
		}
		p = 1.0 / (1.0 + math.Exp(-(sum/10.0 - 2.0)))
	}

	out := &model.Output{
		ProbPositive: p,
		ProbNegative: 1.0 - p,
	}
	if p >= 0.5 {
		out.Class = 1
	}
	return out, nil
}
