// Package middleware provides the HTTP request middleware chain.
package middleware

import (
	"net/http"
	"strings"

	"taller-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	CtxUserID    = "userID"
	CtxCompanyID = "companyID"
	CtxUsername  = "username"
	CtxRole      = "role"
)

// AuthMiddleware validates the bearer token and stores the identity and
// tenant in the Gin context.
func AuthMiddleware(jwtManager *token.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxCompanyID, claims.CompanyID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// UserID reads the authenticated user id from the Gin context.
func UserID(c *gin.Context) uint {
	return c.GetUint(CtxUserID)
}

// CompanyID reads the authenticated tenant from the Gin context.
func CompanyID(c *gin.Context) uint {
	return c.GetUint(CtxCompanyID)
}
