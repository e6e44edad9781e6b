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

type ListingHandler struct {
	listingCommands commands.ListingCommands
}

func NewListingHandler(listingCommands commands.ListingCommands) *ListingHandler {
	return &ListingHandler{
		listingCommands: listingCommands,
	}
}

// @Summary Create listing
// @Description List a name for rent under the given terms
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateListingRequest true "Listing request"
// @Success 201 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateListingRequest
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

	params := commands.CreateListingParams{
		Asset:             assetID,
		MaxDuration:       req.MaxDuration(),
		DailyRate:         req.DailyRateUnits,
		ExtensionsAllowed: req.ExtensionsAllowed,
	}

	listingView, err := h.listingCommands.Create(c.Request.Context(), principalID, params)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNotAssetOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Caller does not control this name",
			})
		case errors.Is(err, commands.ErrListingAlreadyActive):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Name is already listed",
			})
		case errors.Is(err, commands.ErrAlreadyRented):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Name is currently rented",
			})
		case errors.Is(err, commands.ErrRentalPeriodLongerThanRegistration):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Maximum rental duration exceeds the registration period",
			})
		case errors.Is(err, commands.ErrInvalidTerms):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid listing terms",
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

	c.JSON(http.StatusCreated, resdto.FromListingView(listingView))
}

// @Summary Cancel listing
// @Description Withdraw an active listing
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param name path string true "Asset name"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{name} [delete]
func (h *ListingHandler) CancelListing(c *gin.Context) {
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

	if err := h.listingCommands.Cancel(c.Request.Context(), principalID, assetID); err != nil {
		switch {
		case errors.Is(err, commands.ErrNoActiveListing):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active listing for this name",
			})
		case errors.Is(err, commands.ErrNotListingOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Caller did not create this listing",
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
