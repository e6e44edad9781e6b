package api

import (
	"context"
	"errors"
	"net/http"

	"rentens-market/internal/domain/asset"
	reqdto "rentens-market/internal/handler/dto/request"
	resdto "rentens-market/internal/handler/dto/response"
	"rentens-market/internal/handler/middleware"
	"rentens-market/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RentalHandler struct {
	rentalCommands commands.RentalCommands
}

func NewRentalHandler(rentalCommands commands.RentalCommands) *RentalHandler {
	return &RentalHandler{
		rentalCommands: rentalCommands,
	}
}

// @Summary Rent a name
// @Description Rent a listed name for the requested duration
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RentRequest true "Rent request"
// @Success 201 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rentals [post]
func (h *RentalHandler) Rent(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.RentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	assetID, err := asset.ParseID(req.Asset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid asset name",
		})
		return
	}

	params := commands.RentParams{
		Asset:    assetID,
		Duration: req.Duration(),
		Payment:  req.PaymentUnits,
	}

	rentalView, err := h.rentalCommands.Rent(c.Request.Context(), principalID, params)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrListingNotActive):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Name is not listed for rent",
			})
		case errors.Is(err, commands.ErrAlreadyRented):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Name is currently rented",
			})
		case errors.Is(err, commands.ErrSelfRental):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Owner cannot rent their own name",
			})
		case errors.Is(err, commands.ErrExceedsMaxRentalDuration):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Requested duration exceeds the listing maximum",
			})
		case errors.Is(err, commands.ErrExceedsRegistrationPeriod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Requested duration exceeds the registration period",
			})
		case errors.Is(err, commands.ErrInsufficientPayment):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Payment does not cover the rental price",
			})
		case errors.Is(err, commands.ErrOwnerChanged):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Name changed hands since it was listed",
			})
		case errors.Is(err, commands.ErrPaymentFailed):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Payment could not be settled",
			})
		case errors.Is(err, commands.ErrRegistryUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Name registry unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRentalView(rentalView))
}

// @Summary Regain control as owner
// @Description Return control of an expired rental to the owner
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param name path string true "Asset name"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rentals/{name}/regain [post]
func (h *RentalHandler) RegainAsOwner(c *gin.Context) {
	h.regain(c, h.rentalCommands.RegainAsOwner)
}

// @Summary Return control as renter
// @Description Voluntarily end a rental early and return control to the owner
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param name path string true "Asset name"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rentals/{name}/return [post]
func (h *RentalHandler) RegainAsRenter(c *gin.Context) {
	h.regain(c, h.rentalCommands.RegainAsRenter)
}

// @Summary Transfer rental receipt
// @Description Hand the rental receipt, and with it the rental, to another principal
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.TransferReceiptRequest true "Transfer request"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rentals/receipt/transfer [post]
func (h *RentalHandler) TransferReceipt(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.TransferReceiptRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	assetID, err := asset.ParseID(req.Asset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid asset name",
		})
		return
	}

	if err := h.rentalCommands.TransferReceipt(c.Request.Context(), principalID, assetID, req.To); err != nil {
		switch {
		case errors.Is(err, commands.ErrNoActiveRental):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active rental for this name",
			})
		case errors.Is(err, commands.ErrNotReceiptHolder):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Caller does not hold the rental receipt",
			})
		case errors.Is(err, commands.ErrInvalidTransferee):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid transferee",
			})
		case errors.Is(err, commands.ErrReceiptUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Receipt registry unavailable",
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

func (h *RentalHandler) regain(c *gin.Context, op func(ctx context.Context, actor uuid.UUID, id asset.ID) error) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	assetID, err := asset.ParseID(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid asset name",
		})
		return
	}

	if err := op(c.Request.Context(), principalID, assetID); err != nil {
		switch {
		case errors.Is(err, commands.ErrNoActiveRental):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active rental for this name",
			})
		case errors.Is(err, commands.ErrNotRentalOwner), errors.Is(err, commands.ErrNotRenter):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Caller is not a party to this rental",
			})
		case errors.Is(err, commands.ErrRentalStillActive):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Rental period has not ended",
			})
		case errors.Is(err, commands.ErrRegistryUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Name registry unavailable",
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
