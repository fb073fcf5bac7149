package handlers

import (
	"net/http"

	"auction-house/internal/auth"
	"auction-house/internal/services"

	"github.com/gin-gonic/gin"
)

// CommentHandler handles listing comments
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// GetListingComments returns a listing's comments, newest first.
func (h *CommentHandler) GetListingComments(c *gin.Context) {
	listingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	limit, offset := pagination(c, 10, 1000)

	comments, total, err := h.comments.ListForListing(c.Request.Context(), listingID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comments,
		"count":   len(comments),
		"total":   total,
	})
}

// CreateComment attaches a comment to a listing.
func (h *CommentHandler) CreateComment(c *gin.Context) {
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
		Text string `json:"text" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), listingID, userID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    comment,
	})
}

// UpdateComment edits a comment. Author or staff only.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	commentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), commentID, userID, c.GetBool("is_staff"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comment,
	})
}

// DeleteComment removes a comment. Author or staff only.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	commentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), commentID, userID, c.GetBool("is_staff")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Comment deleted",
	})
}
