package middleware

import (
	"net/http"
	"strings"

	"kitsustats-api/internal/auth"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key holding the validated *auth.Claims.
const ClaimsKey = "claims"

// RequireToken rejects requests without a valid token issued by tokens.
func RequireToken(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := requestToken(c)
		if !ok {
			unauthorized(c, "Authorization token is required")
			return
		}
		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireToken.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// requestToken reads a bearer token from the Authorization header, or from the
// token query param for WebSocket upgrades where browsers cannot set headers.
func requestToken(c *gin.Context) (string, bool) {
	if scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " "); found && scheme == "Bearer" && token != "" {
		return token, true
	}
	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", false
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="kitsustats"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
