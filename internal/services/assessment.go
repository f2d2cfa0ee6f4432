package services

import (
	"context"
	"fmt"
	"time"

	"github.com/unimindapp/unimind-backend/internal/platform/apierr"
	"github.com/unimindapp/unimind-backend/internal/platform/logger"
	"github.com/unimindapp/unimind-backend/internal/store"
)

// SaveAssessmentInput is the client-asserted result to persist. The service
// stores what the client sends (matching the mobile client, which posts back
// the result it received from predict) but rejects shapes the classifier
// could never have produced.
type SaveAssessmentInput struct {
	UserID              string
	Prediction          int
	ProbabilityPositive float64
	ProbabilityNegative float64
	RiskLevel           string
	Timestamp           time.Time
	FormData            map[string]any
}

type AssessmentService interface {
	Save(ctx context.Context, callerUID string, in SaveAssessmentInput) (string, error)
	ListByUser(ctx context.Context, callerUID, userID string) ([]*store.AssessmentRecord, error)
}

type assessmentService struct {
	log   *logger.Logger
	store store.AssessmentStore
	now   func() time.Time
}

func NewAssessmentService(log *logger.Logger, st store.AssessmentStore) AssessmentService {
	return &assessmentService{
		log:   log.With("service", "AssessmentService"),
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (as *assessmentService) Save(ctx context.Context, callerUID string, in SaveAssessmentInput) (string, error) {
	if in.UserID == "" || in.UserID != callerUID {
		return "", apierr.Unauthorized(fmt.Errorf("cannot save assessment for another user"))
	}
	if err := validateResultShape(in); err != nil {
		return "", apierr.InvalidInput(err)
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = as.now()
	}

	id, err := as.store.Save(ctx, &store.AssessmentRecord{
		UserID:              in.UserID,
		Prediction:          in.Prediction,
		ProbabilityPositive: in.ProbabilityPositive,
		ProbabilityNegative: in.ProbabilityNegative,
		RiskLevel:           in.RiskLevel,
		Timestamp:           ts,
		FormData:            in.FormData,
	})
	if err != nil {
		as.log.Error("assessment save failed", "user_id", in.UserID, "error", err)
		return "", apierr.Internal(err)
	}
	return id, nil
}

func (as *assessmentService) ListByUser(ctx context.Context, callerUID, userID string) ([]*store.AssessmentRecord, error) {
	if userID == "" || userID != callerUID {
		return nil, apierr.Unauthorized(fmt.Errorf("cannot list assessments for another user"))
	}

	recs, err := as.store.ListByUser(ctx, userID)
	if err != nil {
		as.log.Error("assessment list failed", "user_id", userID, "error", err)
		return nil, apierr.Internal(err)
	}
	return recs, nil
}

func validateResultShape(in SaveAssessmentInput) error {
	if in.Prediction != 0 && in.Prediction != 1 {
		return fmt.Errorf("prediction must be 0 or 1")
	}
	if in.ProbabilityPositive < 0 || in.ProbabilityPositive > 1 {
		return fmt.Errorf("probability_positive out of range")
	}
	if in.ProbabilityNegative < 0 || in.ProbabilityNegative > 1 {
		return fmt.Errorf("probability_negative out of range")
	}
	switch in.RiskLevel {
	case RiskLow, RiskModerate, RiskHigh, RiskVeryHigh:
	default:
		return fmt.Errorf("unknown risk_level %q", in.RiskLevel)
	}
	return nil
}
