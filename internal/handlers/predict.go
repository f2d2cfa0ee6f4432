package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unimindapp/unimind-backend/internal/platform/apierr"
	"github.com/unimindapp/unimind-backend/internal/requestdata"
	"github.com/unimindapp/unimind-backend/internal/services"
)

type PredictHandler struct {
	predictionService services.PredictionService
}

func NewPredictHandler(predictionService services.PredictionService) *PredictHandler {
	return &PredictHandler{predictionService: predictionService}
}

// POST /api/predict
// body: JSON object with the named survey fields; unknown fields are ignored.
func (ph *PredictHandler) Predict(c *gin.Context) {
	uid := requestdata.UID(c.Request.Context())

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apierr.InvalidInput(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	res, err := ph.predictionService.Predict(c.Request.Context(), uid, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
