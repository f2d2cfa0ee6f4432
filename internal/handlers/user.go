package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unimindapp/unimind-backend/internal/requestdata"
	"github.com/unimindapp/unimind-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/user/:userId
func (uh *UserHandler) Get(c *gin.Context) {
	uid := requestdata.UID(c.Request.Context())
	userID := c.Param("userId")

	profile, err := uh.userService.Get(c.Request.Context(), uid, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}
