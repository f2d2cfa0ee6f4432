package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unimindapp/unimind-backend/internal/model"
)

type HealthHandler struct {
	clf model.Classifier
}

func NewHealthHandler(clf model.Classifier) *HealthHandler {
	return &HealthHandler{clf: clf}
}

// GET /health
func (hh *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"timestamp":    time.Now().UTC(),
		"model_loaded": hh.clf != nil,
	})
}
