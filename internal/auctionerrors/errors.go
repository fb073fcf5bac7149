package auctionerrors

import "errors"

// Lookup errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrListingNotFound  = errors.New("listing not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrUserNotFound     = errors.New("user not found")
)

// Domain rule violations
var (
	ErrBidTooLow        = errors.New("bid must exceed the current price")
	ErrListingClosed    = errors.New("listing is closed")
	ErrOwnerCannotBid   = errors.New("owner cannot bid on own listing")
	ErrOwnerCannotWatch = errors.New("owner cannot watch own listing")
	ErrPermissionDenied = errors.New("permission denied")
)

// Validation errors
var (
	ErrValidation        = errors.New("validation error")
	ErrStartBidTooSmall  = errors.New("start bid must be at least 0.01")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrPasswordMismatch  = errors.New("passwords must match")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrCategoryTaken     = errors.New("category slug already exists")
)
