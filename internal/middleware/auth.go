package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unimindapp/unimind-backend/internal/auth"
	"github.com/unimindapp/unimind-backend/internal/platform/apierr"
	"github.com/unimindapp/unimind-backend/internal/platform/logger"
	"github.com/unimindapp/unimind-backend/internal/requestdata"
)

type AuthMiddleware struct {
	log      *logger.Logger
	verifier auth.Verifier
}

func NewAuthMiddleware(log *logger.Logger, verifier auth.Verifier) *AuthMiddleware {
	return &AuthMiddleware{
		log:      log.With("middleware", "AuthMiddleware"),
		verifier: verifier,
	}
}

// RequireAuth gates protected routes. Verification failures are logged and
// answered with 401; they never propagate further into the request.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			abortUnauthenticated(c, errors.New("missing bearer token"))
			return
		}

		claims, err := am.verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Warn("token verification failed", "error", err)
			abortUnauthenticated(c, err)
			return
		}

		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{Claims: claims})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// abortUnauthenticated maps the failure through the shared error taxonomy.
// The response message stays generic; the cause is only logged.
func abortUnauthenticated(c *gin.Context, err error) {
	ae := apierr.Unauthenticated(err)
	c.AbortWithStatusJSON(ae.Status, gin.H{
		"error": gin.H{"message": "missing or invalid token", "code": ae.Code},
	})
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
