package server

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/store"
)

// RegisterRequest is the self-service registration payload. Role is not
// accepted here; every registration lands as a regular user.
type RegisterRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
	)
}

// CreateUserRequest is the admin creation payload which may set a role.
type CreateUserRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.Role, validation.By(func(value any) error {
			role, _ := value.(string)
			if role == "" {
				return nil
			}
			if !auth.IsValidRole(role) {
				return validation.NewError("validation_role", "must be a known role")
			}
			return nil
		})),
	)
}

// UserResponse is the public projection of a stored user.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RegisterUser handles POST /users/register.
func (s *Server) RegisterUser(c *fiber.Ctx) error {
	payload := RegisterRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return renderError(c, errors.Wrap(err, errors.CategoryBadInput, "invalid registration payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return renderValidationError(c, err)
	}

	user, err := s.createUser(c, payload.Email, payload.Password, auth.RoleUser)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

// CreateUser handles POST /users. The route is admin gated; this is the only
// path that assigns a role other than the default.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	payload := CreateUserRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return renderError(c, errors.Wrap(err, errors.CategoryBadInput, "invalid user payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return renderValidationError(c, err)
	}

	role := auth.NormalizeRole(payload.Role)
	if role == "" {
		role = auth.RoleUser
	}

	user, err := s.createUser(c, payload.Email, payload.Password, role)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

func (s *Server) createUser(c *fiber.Ctx, email, password, role string) (*store.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	return s.repo.Users().Register(c.UserContext(), &store.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
}

func userResponse(user *store.User) UserResponse {
	return UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  user.Role,
	}
}
