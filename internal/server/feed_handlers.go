package server

import (
	"github.com/gofiber/fiber/v2"
)

// Index handles GET /. The sitewide feed, newest first, served from the
// short-lived Redis page cache when possible.
func (s *Server) Index(c *fiber.Ctx) error {
	page, err := s.feedService.Index(c.Context(), c.Query("page"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GroupFeed handles GET /group/:slug.
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	page, err := s.feedService.GroupFeed(c.Context(), c.Params("slug"), c.Query("page"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// ProfileFeed handles GET /profile/:username. The following flag reflects
// the viewing user; anonymous viewers always see it false.
func (s *Server) ProfileFeed(c *fiber.Ctx) error {
	viewerID := s.optionalUserID(c)
	page, err := s.feedService.ProfileFeed(c.Context(), c.Params("username"), c.Query("page"), viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// FollowFeed handles GET /follow: posts by the authors the caller follows.
func (s *Server) FollowFeed(c *fiber.Ctx) error {
	page, err := s.feedService.FollowingFeed(c.Context(), currentUserID(c), c.Query("page"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// PostDetail handles GET /posts/:id.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.feedService.PostDetail(c.Context(), postID, s.optionalUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// ClearIndexCache handles POST /internal/cache/clear. This is the only way
// besides TTL expiry for the index feed to pick up fresh posts.
func (s *Server) ClearIndexCache(c *fiber.Ctx) error {
	if err := s.feedService.ClearIndexCache(c.Context()); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Index cache cleared"})
}
