package server

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/goliatone/portfolio-api/store"
)

// CreateBlogRequest is the admin-only blog creation payload.
type CreateBlogRequest struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
	Author  string `json:"author" form:"author"`
}

func (r CreateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 100)),
	)
}

// ListBlogs handles GET /blogs/. The listing is public.
func (s *Server) ListBlogs(c *fiber.Ctx) error {
	records, err := s.repo.Blogs().List(c.UserContext())
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(records)
}

// GetBlog handles GET /blogs/:id.
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := blogID(c)
	if err != nil {
		return renderError(c, err)
	}

	record, err := s.repo.Blogs().GetByID(c.UserContext(), id)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(record)
}

// CreateBlog handles POST /blogs. The route is admin gated.
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	payload := CreateBlogRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return renderError(c, errors.Wrap(err, errors.CategoryBadInput, "invalid blog payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return renderValidationError(c, err)
	}

	record, err := s.repo.Blogs().Create(c.UserContext(), &store.Blog{
		Title:   payload.Title,
		Content: payload.Content,
		Author:  payload.Author,
	})
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// DeleteBlog handles DELETE /blogs/:id. The route is admin gated.
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	id, err := blogID(c)
	if err != nil {
		return renderError(c, err)
	}

	if err := s.repo.Blogs().Delete(c.UserContext(), id); err != nil {
		return renderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func blogID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, errors.New("blog id must be an integer", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}
