package api

import (
	"errors"
	"net/http"

	reqdto "rentens-market/internal/handler/dto/request"
	"rentens-market/internal/handler/middleware"
	"rentens-market/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type FeeHandler struct {
	feeCommands commands.FeeCommands
}

func NewFeeHandler(feeCommands commands.FeeCommands) *FeeHandler {
	return &FeeHandler{
		feeCommands: feeCommands,
	}
}

// @Summary Update fee configuration
// @Description Replace the marketplace fee recipient and rate (admin only)
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SetFeeRequest true "Fee request"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /fees [put]
func (h *FeeHandler) SetFee(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.SetFeeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := commands.SetFeeParams{
		Recipient:       req.Recipient,
		RateBasisPoints: req.RateBasisPoints,
	}

	if err := h.feeCommands.SetFee(c.Request.Context(), principalID, params); err != nil {
		switch {
		case errors.Is(err, commands.ErrNotAdministrator):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the administrator may change the fee",
			})
		case errors.Is(err, commands.ErrFeeTooHigh):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Fee rate exceeds the ceiling",
			})
		case errors.Is(err, commands.ErrInvalidTerms):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid fee configuration",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
