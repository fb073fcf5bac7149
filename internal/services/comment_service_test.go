package services

import (
	"context"
	"strings"
	"testing"

	"auction-house/internal/auctionerrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	service := NewCommentService(db)
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	author := createUser(t, db, "commenter")
	category := createCategory(t, db, "Furniture", "furniture")
	listing := createListing(t, db, owner, category, "Chair", "chair_1", decimal.NewFromFloat(1.00))

	first, err := service.Create(ctx, listing.ID, author.ID, "first")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, err = service.Create(ctx, listing.ID, author.ID, "second")
	require.NoError(t, err)

	comments, total, err := service.ListForListing(ctx, listing.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, comments, 2)
	// Newest first
	assert.Equal(t, "second", comments[0].Text)
}

func TestCommentValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewCommentService(db)
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	author := createUser(t, db, "commenter")
	category := createCategory(t, db, "Furniture", "furniture")
	listing := createListing(t, db, owner, category, "Chair", "chair_1", decimal.NewFromFloat(1.00))

	_, err := service.Create(ctx, listing.ID, author.ID, "")
	require.ErrorIs(t, err, auctionerrors.ErrValidation)

	_, err = service.Create(ctx, listing.ID, author.ID, strings.Repeat("x", 3001))
	require.ErrorIs(t, err, auctionerrors.ErrValidation)

	_, err = service.Create(ctx, 9999, author.ID, "hello")
	require.ErrorIs(t, err, auctionerrors.ErrListingNotFound)
}

func TestCommentUpdateDeletePermissions(t *testing.T) {
	db := setupTestDB(t)
	service := NewCommentService(db)
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	author := createUser(t, db, "commenter")
	stranger := createUser(t, db, "stranger")
	category := createCategory(t, db, "Furniture", "furniture")
	listing := createListing(t, db, owner, category, "Chair", "chair_1", decimal.NewFromFloat(1.00))

	comment, err := service.Create(ctx, listing.ID, author.ID, "original")
	require.NoError(t, err)

	_, err = service.Update(ctx, comment.ID, stranger.ID, false, "hacked")
	require.ErrorIs(t, err, auctionerrors.ErrPermissionDenied)

	updated, err := service.Update(ctx, comment.ID, author.ID, false, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	// Staff can edit anyone's comment.
	_, err = service.Update(ctx, comment.ID, stranger.ID, true, "moderated")
	require.NoError(t, err)

	err = service.Delete(ctx, comment.ID, stranger.ID, false)
	require.ErrorIs(t, err, auctionerrors.ErrPermissionDenied)

	err = service.Delete(ctx, comment.ID, author.ID, false)
	require.NoError(t, err)

	err = service.Delete(ctx, comment.ID, author.ID, false)
	require.ErrorIs(t, err, auctionerrors.ErrCommentNotFound)
}
