package services

import (
	"context"
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"

	"gorm.io/gorm"
)

const maxCommentLength = 3000

// CommentService handles listing comments
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a new CommentService
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Create attaches a comment to a listing.
func (s *CommentService) Create(ctx context.Context, listingID, authorID uint, text string) (*models.Comment, error) {
	if text == "" || len(text) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment must be 1-%d characters", auctionerrors.ErrValidation, maxCommentLength)
	}

	var listing models.Listing
	if err := s.db.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auctionerrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}

	comment := &models.Comment{
		UserID:    authorID,
		ListingID: listingID,
		Text:      text,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListForListing returns a listing's comments, newest first.
func (s *CommentService) ListForListing(ctx context.Context, listingID uint, limit, offset int) ([]models.Comment, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("listing_id = ?", listingID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err = s.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// Update edits a comment's text. Author or staff only.
func (s *CommentService) Update(ctx context.Context, commentID, requesterID uint, isStaff bool, text string) (*models.Comment, error) {
	if text == "" || len(text) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment must be 1-%d characters", auctionerrors.ErrValidation, maxCommentLength)
	}

	comment, err := s.load(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != requesterID && !isStaff {
		return nil, auctionerrors.ErrPermissionDenied
	}

	if err := s.db.WithContext(ctx).Model(comment).Update("text", text).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	comment.Text = text

	return comment, nil
}

// Delete removes a comment. Author or staff only.
func (s *CommentService) Delete(ctx context.Context, commentID, requesterID uint, isStaff bool) error {
	comment, err := s.load(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != requesterID && !isStaff {
		return auctionerrors.ErrPermissionDenied
	}

	return s.db.WithContext(ctx).Delete(comment).Error
}

func (s *CommentService) load(ctx context.Context, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.WithContext(ctx).Where("id = ?", commentID).First(&comment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, auctionerrors.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return &comment, nil
}
