package services

import (
	"context"
	"time"

	"github.com/unimindapp/unimind-backend/internal/features"
	"github.com/unimindapp/unimind-backend/internal/model"
	"github.com/unimindapp/unimind-backend/internal/platform/apierr"
	"github.com/unimindapp/unimind-backend/internal/platform/logger"
)

const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
	RiskVeryHigh = "Very High"
)

// RiskLevelFor buckets a positive-class probability. Thresholds are checked
// descending, first match wins.
func RiskLevelFor(probPositive float64) string {
	switch {
	case probPositive >= 0.7:
		return RiskVeryHigh
	case probPositive >= 0.5:
		return RiskHigh
	case probPositive >= 0.3:
		return RiskModerate
	default:
		return RiskLow
	}
}

type PredictionResult struct {
	Prediction          int       `json:"prediction"`
	ProbabilityPositive float64   `json:"probability_positive"`
	ProbabilityNegative float64   `json:"probability_negative"`
	RiskLevel           string    `json:"risk_level"`
	UID                 string    `json:"uid"`
	Timestamp           time.Time `json:"timestamp"`
}

type PredictionService interface {
	Predict(ctx context.Context, uid string, payload map[string]any) (*PredictionResult, error)
}

type predictionService struct {
	log *logger.Logger
	clf model.Classifier
	now func() time.Time
}

func NewPredictionService(log *logger.Logger, clf model.Classifier) PredictionService {
	return &predictionService{
		log: log.With("service", "PredictionService"),
		clf: clf,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (ps *predictionService) Predict(ctx context.Context, uid string, payload map[string]any) (*PredictionResult, error) {
	vec, err := features.Extract(payload)
	if err != nil {
		return nil, apierr.InvalidInput(err)
	}

	out, err := ps.clf.Predict(ctx, vec)
	if err != nil {
		ps.log.Error("classifier call failed", "uid", uid, "error", err)
		return nil, apierr.Internal(err)
	}

	res := &PredictionResult{
		Prediction:          out.Class,
		ProbabilityPositive: out.ProbPositive,
		ProbabilityNegative: out.ProbNegative,
		RiskLevel:           RiskLevelFor(out.ProbPositive),
		UID:                 uid,
		Timestamp:           ps.now(),
	}
	ps.log.Debug("prediction computed", "uid", uid, "risk_level", res.RiskLevel)
	return res, nil
}
