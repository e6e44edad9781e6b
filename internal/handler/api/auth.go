package api

import (
	"net/http"

	"rentens-market/internal/domain/principal"
	reqdto "rentens-market/internal/handler/dto/request"
	resdto "rentens-market/internal/handler/dto/response"
	"rentens-market/internal/handler/middleware"
	"rentens-market/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AuthHandler issues marketplace tokens. The marketplace has no account
// database: identity comes from the deployment (signed tokens for known
// principals), so the issue endpoint is only mounted when dev tokens are
// enabled.
type AuthHandler struct {
	tokens *jwt.Service
}

func NewAuthHandler(tokens *jwt.Service) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// @Summary Issue a development token
// @Description Issue a signed token for an arbitrary principal (dev only)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.IssueTokenRequest true "Token request"
// @Success 200 {object} resdto.TokenResponse
// @Failure 400 {object} map[string]string
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req reqdto.IssueTokenRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	role, ok := principal.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown role",
		})
		return
	}

	token, err := h.tokens.GenerateToken(req.PrincipalID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

// @Summary Current principal
// @Description Return the authenticated principal and role
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.MeResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, _ := middleware.GetPrincipalRole(c)

	c.JSON(http.StatusOK, resdto.MeResponse{
		PrincipalID: principalID,
		Role:        string(role),
	})
}
