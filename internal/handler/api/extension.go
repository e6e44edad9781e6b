package api

import (
	"errors"
	"net/http"

	"rentens-market/internal/domain/asset"
	reqdto "rentens-market/internal/handler/dto/request"
	resdto "rentens-market/internal/handler/dto/response"
	"rentens-market/internal/handler/middleware"
	"rentens-market/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ExtensionHandler struct {
	extensionCommands commands.ExtensionCommands
}

func NewExtensionHandler(extensionCommands commands.ExtensionCommands) *ExtensionHandler {
	return &ExtensionHandler{
		extensionCommands: extensionCommands,
	}
}

// @Summary Propose extension
// @Description Propose moving the rental's end time out, at a price
// @Tags extensions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOfferRequest true "Offer request"
// @Success 201 {object} resdto.OfferResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /extensions [post]
func (h *ExtensionHandler) CreateOffer(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateOfferRequest
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

	params := commands.CreateOfferParams{
		Asset:       assetID,
		ProposedEnd: req.ProposedEnd,
		Price:       req.PriceUnits,
	}

	offerView, err := h.extensionCommands.Create(c.Request.Context(), principalID, params)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoActiveRental):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active rental for this name",
			})
		case errors.Is(err, commands.ErrNotRentalParty):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Caller is not a party to this rental",
			})
		case errors.Is(err, commands.ErrExtensionsNotAllowed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Listing does not allow extensions",
			})
		case errors.Is(err, commands.ErrInvalidExtensionEnd):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Proposed end must be after the current rental end",
			})
		case errors.Is(err, commands.ErrExceedsRegistrationPeriod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Proposed end exceeds the registration period",
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

	c.JSON(http.StatusCreated, resdto.FromOfferView(offerView))
}

// @Summary Cancel extension offer
// @Description Withdraw a pending extension offer
// @Tags extensions
// @Produce json
// @Security BearerAuth
// @Param name path string true "Asset name"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /extensions/{name} [delete]
func (h *ExtensionHandler) CancelOffer(c *gin.Context) {
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

	if err := h.extensionCommands.Cancel(c.Request.Context(), principalID, assetID); err != nil {
		switch {
		case errors.Is(err, commands.ErrNoPendingOffer):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No pending extension offer for this name",
			})
		case errors.Is(err, commands.ErrNotOfferProposer):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Caller did not propose this offer",
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

// @Summary Accept extension offer
// @Description Accept the pending offer; the renter pays and the rental end moves out
// @Tags extensions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AcceptOfferRequest true "Accept request"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /extensions/accept [post]
func (h *ExtensionHandler) AcceptOffer(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.AcceptOfferRequest
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

	params := commands.AcceptOfferParams{
		Asset:   assetID,
		Payment: req.PaymentUnits,
	}

	rentalView, err := h.extensionCommands.Accept(c.Request.Context(), principalID, params)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoPendingOffer):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No pending extension offer for this name",
			})
		case errors.Is(err, commands.ErrNoActiveRental):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active rental for this name",
			})
		case errors.Is(err, commands.ErrNotCounterparty):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the counterparty may accept this offer",
			})
		case errors.Is(err, commands.ErrInsufficientPayment):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Payment does not cover the offered price",
			})
		case errors.Is(err, commands.ErrInvalidExtensionEnd):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Offer no longer extends the rental",
			})
		case errors.Is(err, commands.ErrExceedsRegistrationPeriod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Proposed end exceeds the registration period",
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

	c.JSON(http.StatusOK, resdto.FromRentalView(rentalView))
}
