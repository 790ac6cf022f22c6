package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fitfeed/internal/auth"
	"fitfeed/internal/domain"
)

const contextUserKey = "fitfeed.user"

// RequireAuth verifies the Bearer token on the request and attaches the
// resolved user to the context. A valid token whose user no longer
// exists lets the request proceed with an empty identity; downstream
// handlers fail their own identity checks. Verification failures are a
// uniform 401 regardless of cause.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		token := bearerToken(header)
		userID, err := h.issuer.Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				h.logger.Debugf("auth: expired token from %s", c.ClientIP())
			case errors.Is(err, auth.ErrSignatureInvalid):
				h.logger.Warnf("auth: bad token signature from %s", c.ClientIP())
			default:
				h.logger.Debugf("auth: malformed token from %s", c.ClientIP())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "request is not authorized"})
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				h.logger.Warnf("auth: token for missing user %s", userID)
				c.Next()
				return
			}
			h.logger.Errorf("auth: lookup user %s: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// currentUserID returns the authenticated user's id, or "" when the
// middleware attached no identity.
func currentUserID(c *gin.Context) string {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user.ID
		}
	}
	return ""
}
