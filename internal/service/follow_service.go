package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/repository"
)

// FollowService manages follow edges between readers and authors.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow subscribes userID to the author's posts. Following an already
// followed author is a no-op, and following yourself is silently ignored so
// the profile page can always offer the button.
func (s *FollowService) Follow(ctx context.Context, userID uint, authorUsername string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}

	if author.ID == userID {
		return author, nil
	}

	if err := s.followRepo.Follow(ctx, userID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

// Unfollow removes the caller's own subscription to the author. Other
// readers' subscriptions are untouched.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, authorUsername string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Unfollow(ctx, userID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

// IsFollowing reports whether userID follows the given author. An anonymous
// viewer (userID 0) follows nobody.
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.followRepo.Exists(ctx, userID, authorID)
}
