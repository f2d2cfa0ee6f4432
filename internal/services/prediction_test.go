package services

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/unimindapp/unimind-backend/internal/features"
	"github.com/unimindapp/unimind-backend/internal/model"
	"github.com/unimindapp/unimind-backend/internal/model/mock"
	"github.com/unimindapp/unimind-backend/internal/platform/apierr"
	"github.com/unimindapp/unimind-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func apiStatus(t *testing.T, err error) int {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	return ae.Status
}

func TestRiskLevelThresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		p    float64
		want string
	}{
		{0.0, RiskLow},
		{0.29, RiskLow},
		{0.3, RiskModerate},
		{0.49, RiskModerate},
		{0.5, RiskHigh},
		{0.69, RiskHigh},
		{0.7, RiskVeryHigh},
		{1.0, RiskVeryHigh},
	}
	for _, tc := range cases {
		if got := RiskLevelFor(tc.p); got != tc.want {
			t.Fatalf("RiskLevelFor(%v): got=%q want=%q", tc.p, got, tc.want)
		}
	}
}

func TestPredictHappyPath(t *testing.T) {
	t.Parallel()

	prob := 0.82
	clf := mock.New(len(features.FieldOrder))
	clf.FixedProb = &prob

	svc := NewPredictionService(testLogger(t), clf)
	res, err := svc.Predict(context.Background(), "user-1", map[string]any{"sleep_hours": 7.0})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if res.UID != "user-1" {
		t.Fatalf("uid: got=%q", res.UID)
	}
	if res.RiskLevel != RiskVeryHigh {
		t.Fatalf("risk level: got=%q want=%q", res.RiskLevel, RiskVeryHigh)
	}
	if res.Prediction != 1 {
		t.Fatalf("prediction: got=%d", res.Prediction)
	}
	if math.Abs(res.ProbabilityPositive+res.ProbabilityNegative-1.0) > 1e-9 {
		t.Fatalf("probabilities do not sum to 1")
	}
	if res.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestPredictInvalidInput(t *testing.T) {
	t.Parallel()

	svc := NewPredictionService(testLogger(t), mock.New(len(features.FieldOrder)))

	for _, payload := range []map[string]any{
		nil,
		{"sleep_hours": -2.0},
		{"GPA": "not a number"},
	} {
		_, err := svc.Predict(context.Background(), "user-1", payload)
		if status := apiStatus(t, err); status != http.StatusBadRequest {
			t.Fatalf("payload %v: status got=%d want=400", payload, status)
		}
	}
}

type failingClassifier struct{}

func (failingClassifier) NumFeatures() int { return len(features.FieldOrder) }
func (failingClassifier) Predict(context.Context, []float64) (*model.Output, error) {
	return nil, errors.New("artifact exploded")
}

func TestPredictClassifierFailureIsInternal(t *testing.T) {
	t.Parallel()

	svc := NewPredictionService(testLogger(t), failingClassifier{})
	_, err := svc.Predict(context.Background(), "user-1", map[string]any{"sleep_hours": 7.0})
	if status := apiStatus(t, err); status != http.StatusInternalServerError {
		t.Fatalf("status: got=%d want=500", status)
	}
}
