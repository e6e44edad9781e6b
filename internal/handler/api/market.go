package api

import (
	"errors"
	"net/http"
	"strconv"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/money"
	resdto "rentens-market/internal/handler/dto/response"
	"rentens-market/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	marketQueries queries.MarketQueries
}

func NewMarketHandler(marketQueries queries.MarketQueries) *MarketHandler {
	return &MarketHandler{
		marketQueries: marketQueries,
	}
}

// @Summary Get listing
// @Description Get the active listing for a name
// @Tags market
// @Produce json
// @Param name path string true "Asset name"
// @Success 200 {object} resdto.ListingResponse
// @Failure 404 {object} map[string]string
// @Router /market/listings/{name} [get]
func (h *MarketHandler) GetListing(c *gin.Context) {
	assetID, err := asset.ParseID(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid asset name",
		})
		return
	}

	listingView, err := h.marketQueries.Listing(c.Request.Context(), assetID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Listing not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingView(listingView))
}

// @Summary List active listings
// @Description Get every name currently listed for rent
// @Tags market
// @Produce json
// @Success 200 {array} resdto.ListingResponse
// @Router /market/listings [get]
func (h *MarketHandler) GetActiveListings(c *gin.Context) {
	listingViews, err := h.marketQueries.ActiveListings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ListingResponse, len(listingViews))
	for i, rm := range listingViews {
		response[i] = resdto.FromListingView(rm)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get rental
// @Description Get the active rental for a name
// @Tags market
// @Produce json
// @Param name path string true "Asset name"
// @Success 200 {object} resdto.RentalResponse
// @Failure 404 {object} map[string]string
// @Router /market/rentals/{name} [get]
func (h *MarketHandler) GetRental(c *gin.Context) {
	assetID, err := asset.ParseID(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid asset name",
		})
		return
	}

	rentalView, err := h.marketQueries.Rental(c.Request.Context(), assetID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRentalNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Rental not found",
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

// @Summary Get extension offer
// @Description Get the latest extension offer for a name
// @Tags market
// @Produce json
// @Param name path string true "Asset name"
// @Success 200 {object} resdto.OfferResponse
// @Failure 404 {object} map[string]string
// @Router /market/extensions/{name} [get]
func (h *MarketHandler) GetOffer(c *gin.Context) {
	assetID, err := asset.ParseID(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid asset name",
		})
		return
	}

	offerView, err := h.marketQueries.Offer(c.Request.Context(), assetID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrOfferNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Extension offer not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromOfferView(offerView))
}

// @Summary Royalty info
// @Description Report the fee recipient and fee amount for a hypothetical sale price
// @Tags market
// @Produce json
// @Param salePrice query int true "Sale price in payment units"
// @Success 200 {object} resdto.RoyaltyResponse
// @Failure 400 {object} map[string]string
// @Router /market/royalty [get]
func (h *MarketHandler) GetRoyalty(c *gin.Context) {
	salePriceUnits, err := strconv.ParseInt(c.Query("salePrice"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sale price",
		})
		return
	}

	salePrice, err := money.New(salePriceUnits)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sale price",
		})
		return
	}

	royaltyView, err := h.marketQueries.Royalty(c.Request.Context(), salePrice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoyaltyView(royaltyView))
}

// @Summary Recent events
// @Description Get the most recent marketplace events for a name
// @Tags market
// @Produce json
// @Param name path string true "Asset name"
// @Param limit query int false "Maximum events to return"
// @Success 200 {array} resdto.EventResponse
// @Router /market/events/{name} [get]
func (h *MarketHandler) GetEvents(c *gin.Context) {
	assetID, err := asset.ParseID(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid asset name",
		})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit",
			})
			return
		}
	}

	events, err := h.marketQueries.Events(c.Request.Context(), assetID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.EventResponse, len(events))
	for i, e := range events {
		response[i] = resdto.FromEvent(e)
	}

	c.JSON(http.StatusOK, response)
}
