package service

import (
	"context"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment_Validation(t *testing.T) {
	t.Parallel()

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo())
		_, err := svc.AddComment(context.Background(), AddCommentInput{AuthorID: 1, PostID: 1, Text: "   "})
		assertValidationError(t, err)
	})

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := NewCommentService(noopCommentRepo(), postRepo)
		_, err := svc.AddComment(context.Background(), AddCommentInput{AuthorID: 1, PostID: 99, Text: "hi"})
		assertNotFoundError(t, err)
	})
}

func TestCommentService_AddComment_Success(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 42
		return nil
	}
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, Text: "hello", AuthorID: 1, PostID: 1}, nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo())
	comment, err := svc.AddComment(context.Background(), AddCommentInput{AuthorID: 1, PostID: 1, Text: " hello "})
	require.NoError(t, err)
	assert.Equal(t, uint(42), comment.ID)
	assert.Equal(t, "hello", comment.Text)
}
