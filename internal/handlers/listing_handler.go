package handlers

import (
	"net/http"

	"auction-house/internal/auth"
	"auction-house/internal/repository"
	"auction-house/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListingHandler handles listing resources
type ListingHandler struct {
	listings *services.ListingService
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listings *services.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// GetListings returns annotated listings with optional filtering, search and
// sorting. Defaults to active listings, newest first.
func (h *ListingHandler) GetListings(c *gin.Context) {
	limit, offset := pagination(c, 15, 1000)

	filter := repository.ListingFilter{
		ActiveOnly:   c.DefaultQuery("active", "true") == "true",
		CategorySlug: c.Query("category"),
		Search:       c.Query("q"),
		BidFilter:    c.Query("bid_filter"),
		Sort:         c.DefaultQuery("sort", "date_desc"),
		Limit:        limit,
		Offset:       offset,
	}

	listings, total, err := h.listings.List(c.Request.Context(), filter)
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

// GetMyListings returns the authenticated user's own listings, active or not.
func (h *ListingHandler) GetMyListings(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	limit, offset := pagination(c, 20, 1000)

	filter := repository.ListingFilter{
		OwnerID:   userID,
		BidFilter: c.Query("bid_filter"),
		Sort:      c.DefaultQuery("sort", "date_desc"),
		Limit:     limit,
		Offset:    offset,
	}

	listings, total, err := h.listings.List(c.Request.Context(), filter)
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

// GetListing returns a single annotated listing. For authenticated callers
// the payload reports whether the listing is on their watchlist.
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	listing, err := h.listings.Get(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	payload := gin.H{
		"success": true,
		"data":    listing,
	}

	if userID, ok := auth.GetUserID(c); ok {
		watched, err := h.listings.InWatchlist(c.Request.Context(), userID, listingID)
		if err == nil {
			payload["in_watchlist"] = watched
		}
	}

	c.JSON(http.StatusOK, payload)
}

// GetListingBySlug returns a single annotated listing addressed by slug, the
// form listing detail links use.
func (h *ListingHandler) GetListingBySlug(c *gin.Context) {
	listing, err := h.listings.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	payload := gin.H{
		"success": true,
		"data":    listing,
	}

	if userID, ok := auth.GetUserID(c); ok {
		watched, err := h.listings.InWatchlist(c.Request.Context(), userID, listing.ID)
		if err == nil {
			payload["in_watchlist"] = watched
		}
	}

	c.JSON(http.StatusOK, payload)
}

// CreateListing creates a new active listing owned by the caller.
func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		CategoryID  uint            `json:"category_id" binding:"required"`
		Name        string          `json:"name" binding:"required"`
		Description string          `json:"description"`
		StartBid    decimal.Decimal `json:"start_bid" binding:"required"`
		Image       string          `json:"image"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listings.Create(c.Request.Context(), userID, services.CreateListingInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		StartBid:    req.StartBid,
		Image:       req.Image,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    listing,
	})
}

// UpdateListing edits listing fields. Owner or staff only.
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	listingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Image       *string `json:"image"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listings.Update(c.Request.Context(), listingID, userID, c.GetBool("is_staff"), services.UpdateListingInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    listing,
	})
}

// CloseListing deactivates a listing. Owner only; terminal.
func (h *ListingHandler) CloseListing(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	listingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	listing, err := h.listings.Close(c.Request.Context(), listingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    listing,
	})
}
