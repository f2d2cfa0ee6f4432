package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/unimindapp/unimind-backend/internal/platform/apierr"
)

// respondError is the single place service errors become HTTP responses.
func respondError(c *gin.Context, err error) {
	ae := apierr.From(err)
	c.JSON(ae.Status, gin.H{
		"error": gin.H{"message": ae.Error(), "code": ae.Code},
	})
}
