package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unimindapp/unimind-backend/internal/platform/apierr"
	"github.com/unimindapp/unimind-backend/internal/requestdata"
	"github.com/unimindapp/unimind-backend/internal/services"
)

type AssessmentHandler struct {
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

type saveAssessmentRequest struct {
	UserID              string         `json:"userId"`
	Prediction          int            `json:"prediction"`
	ProbabilityPositive float64        `json:"probability_positive"`
	ProbabilityNegative float64        `json:"probability_negative"`
	RiskLevel           string         `json:"risk_level"`
	Timestamp           string         `json:"timestamp"`
	FormData            map[string]any `json:"formData"`
}

// POST /api/save-assessment
func (ah *AssessmentHandler) Save(c *gin.Context) {
	uid := requestdata.UID(c.Request.Context())

	var req saveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidInput(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	// The mobile client stamps the result before posting; a blank or
	// malformed timestamp falls back to server time.
	var ts time.Time
	if req.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
			ts = parsed.UTC()
		}
	}

	id, err := ah.assessmentService.Save(c.Request.Context(), uid, services.SaveAssessmentInput{
		UserID:              req.UserID,
		Prediction:          req.Prediction,
		ProbabilityPositive: req.ProbabilityPositive,
		ProbabilityNegative: req.ProbabilityNegative,
		RiskLevel:           req.RiskLevel,
		Timestamp:           ts,
		FormData:            req.FormData,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assessment_id": id})
}

// GET /api/assessments/:userId
func (ah *AssessmentHandler) ListByUser(c *gin.Context) {
	uid := requestdata.UID(c.Request.Context())
	userID := c.Param("userId")

	recs, err := ah.assessmentService.ListByUser(c.Request.Context(), uid, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assessments": recs})
}
