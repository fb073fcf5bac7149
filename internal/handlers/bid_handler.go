package handlers

import (
	"net/http"

	"auction-house/internal/auth"
	"auction-house/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BidHandler handles bid placement and bid history
type BidHandler struct {
	bids *services.BidService
}

// NewBidHandler creates a new BidHandler
func NewBidHandler(bids *services.BidService) *BidHandler {
	return &BidHandler{bids: bids}
}

// PlaceBid validates and appends a bid on a listing.
func (h *BidHandler) PlaceBid(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	listingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid, err := h.bids.PlaceBid(c.Request.Context(), listingID, userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    bid,
	})
}

// GetListingBids returns a listing's bid history, highest first.
func (h *BidHandler) GetListingBids(c *gin.Context) {
	listingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	limit, offset := pagination(c, 50, 5000)

	bids, total, err := h.bids.ListForListing(c.Request.Context(), listingID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bids,
		"count":   len(bids),
		"total":   total,
	})
}

// GetMyBids returns the authenticated user's bids, newest first.
func (h *BidHandler) GetMyBids(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, offset := pagination(c, 50, 5000)

	bids, total, err := h.bids.ListForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bids,
		"count":   len(bids),
		"total":   total,
	})
}
