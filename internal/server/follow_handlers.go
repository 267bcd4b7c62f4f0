package server

import (
	"yatube/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles POST /profile/:username/follow. Following an already
// followed author or yourself is a quiet no-op; either way the caller lands
// back on the profile page.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	author, err := s.followService.Follow(c.Context(), currentUserID(c), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.FollowMutations.WithLabelValues("follow").Inc()
	return c.Redirect("/profile/"+author.Username, fiber.StatusFound)
}

// UnfollowAuthor handles POST /profile/:username/unfollow. Only the caller's
// own subscription is removed.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	author, err := s.followService.Unfollow(c.Context(), currentUserID(c), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.FollowMutations.WithLabelValues("unfollow").Inc()
	return c.Redirect("/profile/"+author.Username, fiber.StatusFound)
}
