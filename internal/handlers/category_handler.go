package handlers

import (
	"net/http"

	"auction-house/internal/repository"
	"auction-house/internal/services"

	"github.com/gin-gonic/gin"
)

// CategoryHandler handles the category taxonomy
type CategoryHandler struct {
	categories *services.CategoryService
	listings   *services.ListingService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories *services.CategoryService, listings *services.ListingService) *CategoryHandler {
	return &CategoryHandler{categories: categories, listings: listings}
}

// GetCategories returns all categories ordered by name.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
		"count":   len(categories),
	})
}

// GetCategoryListings returns the active listings under a category slug.
func (h *CategoryHandler) GetCategoryListings(c *gin.Context) {
	category, err := h.categories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	limit, offset := pagination(c, 15, 1000)

	filter := repository.ListingFilter{
		ActiveOnly:   true,
		CategorySlug: category.Slug,
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
		"success":  true,
		"category": category,
		"data":     listings,
		"count":    len(listings),
		"total":    total,
	})
}

// CreateCategory adds a category (staff only, enforced by middleware).
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}
