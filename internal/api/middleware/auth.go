package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtutil "github.com/TiebeBeniers/vvsrotselaar/pkg/jwt"
)

const claimsKey = "claims"

// Auth verifies the bearer token and stores the claims on the context.
func Auth(jwtManager *jwtutil.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.Verify(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Set("userId", claims.UserID)
		c.Next()
	}
}

// RequireAdmin allows only users with the admin rol. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || claims.Rol != "admin" {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin rights required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaims returns the verified claims set by Auth, or nil.
func GetClaims(c *gin.Context) *jwtutil.Claims {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*jwtutil.Claims)
	if !ok {
		return nil
	}
	return claims
}
