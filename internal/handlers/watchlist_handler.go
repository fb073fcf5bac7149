package handlers

import (
	"net/http"

	"auction-house/internal/auth"
	"auction-house/internal/repository"
	"auction-house/internal/services"

	"github.com/gin-gonic/gin"
)

// WatchlistHandler handles the per-user watchlist
type WatchlistHandler struct {
	watchlist *services.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(watchlist *services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlist}
}

// ToggleWatch adds the listing to the caller's watchlist if absent, removes
// it if present.
func (h *WatchlistHandler) ToggleWatch(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	listingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	result, err := h.watchlist.Toggle(c.Request.Context(), userID, listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

// GetWatchlist returns the annotated listings the caller is watching.
func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, offset := pagination(c, 50, 5000)

	filter := repository.ListingFilter{
		BidFilter: c.Query("bid_filter"),
		Sort:      c.DefaultQuery("sort", "date_desc"),
		Limit:     limit,
		Offset:    offset,
	}

	listings, total, err := h.watchlist.ListWatched(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    listings,
		"count":   len(listings),
		"total":   total,
	})
}
