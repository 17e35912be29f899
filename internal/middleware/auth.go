package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/garden-api/internal/utils"
)

// Context keys set by RequireRole for the handlers behind it.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextClaims   = "claims"
)

// RequireRole rejects requests without a valid bearer token (401) or whose
// token carries a different role (403). Accepted requests get the token's
// claims attached to the context.
func RequireRole(tokens *utils.TokenIssuer, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.ExtractBearer(c.GetHeader("Authorization"))
		if token == "" {
			abortAuth(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims := tokens.Verify(token)
		if claims == nil {
			abortAuth(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if claims.Role != role {
			abortAuth(c, http.StatusForbidden, "Insufficient permissions")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// CurrentClaims returns the claims RequireRole attached, if any.
func CurrentClaims(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok && claims != nil
}

func abortAuth(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message, "requiresAuth": true})
}
