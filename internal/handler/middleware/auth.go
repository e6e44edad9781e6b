package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"rentens-market/internal/domain/principal"
	"rentens-market/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenValidator abstracts the JWT service for the middleware.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const (
	ctxPrincipalIDKey   = "principal_id"
	ctxPrincipalRoleKey = "principal_role"
)

var roleHierarchy = map[principal.Role]int{
	principal.RoleTrader: 1,
	principal.RoleAdmin:  2,
}

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		role, ok := principal.ParseRole(claims.Role)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxPrincipalIDKey, claims.PrincipalID)
		c.Set(ctxPrincipalRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"principal_id": claims.PrincipalID.String(),
			"role":         string(role),
		})
		c.Next()
	}
}

func hasMinimumRole(principalRole, minRole principal.Role) bool {
	principalLevel, principalExists := roleHierarchy[principalRole]
	minLevel, minExists := roleHierarchy[minRole]
	return principalExists && minExists && principalLevel >= minLevel
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole principal.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetPrincipalRole(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetPrincipalID(c *gin.Context) (uuid.UUID, bool) {
	principalID, exists := c.Get(ctxPrincipalIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := principalID.(uuid.UUID)
	return id, ok
}

func GetPrincipalRole(c *gin.Context) (principal.Role, bool) {
	principalRole, exists := c.Get(ctxPrincipalRoleKey)
	if !exists {
		return "", false
	}

	role, ok := principalRole.(principal.Role)
	return role, ok
}
