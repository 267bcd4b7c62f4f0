package server

import (
	"fmt"
	"io"

	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Text    string `json:"text" form:"text"`
	GroupID *uint  `json:"group_id" form:"group_id"`
}

// readAttachment extracts an optional multipart image, stores it, and
// returns the stored URL. An absent file is not an error.
func (s *Server) readAttachment(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return "", nil
	}

	f, err := file.Open()
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	return s.imageStore.Save(content)
}

// CreatePost handles POST /create. A successful publish redirects to the
// author's profile; invalid input is a 400 and nothing is persisted.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	imageURL, err := s.readAttachment(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	_, err = s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: userID,
		Text:     req.Text,
		GroupID:  req.GroupID,
		ImageURL: imageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	author, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Redirect("/profile/"+author.Username, fiber.StatusFound)
}

// EditPost handles POST /posts/:id/edit. Only the author may edit; anyone
// else is silently bounced back to the post page with no changes saved.
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	imageURL, err := s.readAttachment(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	_, err = s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:   currentUserID(c),
		PostID:   postID,
		Text:     req.Text,
		GroupID:  req.GroupID,
		ImageURL: imageURL,
	})
	if err != nil {
		if models.HasCode(err, models.CodeUnauthorized) {
			return c.Redirect(fmt.Sprintf("/posts/%d", postID), fiber.StatusFound)
		}
		return respondServiceError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/posts/%d", postID), fiber.StatusFound)
}

// DeletePost handles POST /posts/:id/delete. Non-authors are bounced back
// to the post page the same way a non-author edit is.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		if models.HasCode(err, models.CodeUnauthorized) {
			return c.Redirect(fmt.Sprintf("/posts/%d", postID), fiber.StatusFound)
		}
		return respondServiceError(c, err)
	}

	author, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect("/profile/"+author.Username, fiber.StatusFound)
}
