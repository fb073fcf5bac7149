package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors to HTTP statuses. Rule violations that
// conflict with the listing's current state (too-low bid, closed listing)
// are 409s; ownership and permission rules are 403s.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auctionerrors.ErrCategoryNotFound),
		errors.Is(err, auctionerrors.ErrListingNotFound),
		errors.Is(err, auctionerrors.ErrCommentNotFound),
		errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, auctionerrors.ErrBidTooLow),
		errors.Is(err, auctionerrors.ErrListingClosed):
		return http.StatusConflict
	case errors.Is(err, auctionerrors.ErrOwnerCannotBid),
		errors.Is(err, auctionerrors.ErrOwnerCannotWatch),
		errors.Is(err, auctionerrors.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, auctionerrors.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, auctionerrors.ErrValidation),
		errors.Is(err, auctionerrors.ErrStartBidTooSmall),
		errors.Is(err, auctionerrors.ErrUsernameTaken),
		errors.Is(err, auctionerrors.ErrPasswordMismatch),
		errors.Is(err, auctionerrors.ErrCategoryTaken):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standard error payload for a domain error.
// Unexpected errors are logged and masked from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		utils.Error("request failed", map[string]any{
			"path":  c.FullPath(),
			"error": err.Error(),
		})
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// pagination reads limit/offset query params with a per-resource default
// page size, capped at maxLimit.
func pagination(c *gin.Context, defaultLimit, maxLimit int) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
