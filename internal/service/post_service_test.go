package service

import (
	"context"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopGroupRepo())
		_, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 1, Text: "   "})
		assertValidationError(t, err)
	})

	t.Run("unknown group", func(t *testing.T) {
		t.Parallel()
		groupRepo := noopGroupRepo()
		groupRepo.getByIDFn = func(_ context.Context, id uint) (*models.Group, error) {
			return nil, models.NewNotFoundError("Group", id)
		}
		svc := NewPostService(noopPostRepo(), groupRepo)
		badGroup := uint(99)
		_, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 1, Text: "hello", GroupID: &badGroup})
		assertValidationError(t, err)
	})
}

func TestPostService_CreatePost_AuthorFromCaller(t *testing.T) {
	t.Parallel()

	var created *models.Post
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 7
		created = p
		return nil
	}
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Text: created.Text, AuthorID: created.AuthorID}, nil
	}

	svc := NewPostService(postRepo, noopGroupRepo())
	post, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 3, Text: "  hello  "})
	require.NoError(t, err)
	assert.Equal(t, uint(3), post.AuthorID)
	assert.Equal(t, "hello", post.Text)
}

func TestPostService_UpdatePost_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("non-author cannot edit", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, AuthorID: 10, Text: "original"}, nil
		}
		svc := NewPostService(postRepo, noopGroupRepo())
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 1, Text: "hijacked"})
		assertUnauthorizedError(t, err)
	})

	t.Run("author can edit", func(t *testing.T) {
		t.Parallel()
		storedText := "original"
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, AuthorID: 1, Text: storedText}, nil
		}
		postRepo.updateFn = func(_ context.Context, p *models.Post) error {
			storedText = p.Text
			return nil
		}
		svc := NewPostService(postRepo, noopGroupRepo())
		post, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 1, Text: "edited"})
		require.NoError(t, err)
		assert.Equal(t, "edited", post.Text)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, AuthorID: 1, Text: "original"}, nil
		}
		svc := NewPostService(postRepo, noopGroupRepo())
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 1, Text: ""})
		assertValidationError(t, err)
	})

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := NewPostService(postRepo, noopGroupRepo())
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 99, Text: "whatever"})
		assertNotFoundError(t, err)
	})
}

func TestPostService_UpdatePost_CanDetachGroup(t *testing.T) {
	t.Parallel()

	groupID := uint(5)
	var saved *models.Post
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		if saved != nil {
			return saved, nil
		}
		return &models.Post{ID: 1, AuthorID: 1, Text: "original", GroupID: &groupID}, nil
	}
	postRepo.updateFn = func(_ context.Context, p *models.Post) error {
		saved = p
		return nil
	}

	svc := NewPostService(postRepo, noopGroupRepo())
	post, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 1, Text: "edited", GroupID: nil})
	require.NoError(t, err)
	assert.Nil(t, post.GroupID)
}

func TestPostService_DeletePost_Ownership(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return &models.Post{ID: 1, AuthorID: 10}, nil
	}
	svc := NewPostService(postRepo, noopGroupRepo())

	err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 1})
	assertUnauthorizedError(t, err)

	err = svc.DeletePost(context.Background(), DeletePostInput{UserID: 10, PostID: 1})
	require.NoError(t, err)
}
