package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/config"
	"github.com/goliatone/portfolio-api/middleware/jwtware"
	"github.com/goliatone/portfolio-api/social"
	"github.com/goliatone/portfolio-api/store"
)

// Server wires controllers onto a fiber app.
type Server struct {
	app      *fiber.App
	cfg      *config.Config
	auther   auth.Authenticator
	repo     store.RepositoryManager
	provider social.SocialProvider
	logger   auth.Logger
}

// Option mutates the server during construction.
type Option func(*Server)

// WithSocialProvider installs the OAuth identity assertion source. Without
// it the Google routes respond 404.
func WithSocialProvider(provider social.SocialProvider) Option {
	return func(s *Server) {
		s.provider = provider
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger auth.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New builds the fiber app with all routes registered.
func New(cfg *config.Config, auther auth.Authenticator, repo store.RepositoryManager, opts ...Option) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:      "Portfolio API",
			ErrorHandler: fiberErrorHandler,
		}),
		cfg:    cfg,
		auther: auther,
		repo:   repo,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.registerRoutes()

	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on the configured address.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Server.Host + ":" + s.cfg.Server.Port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes() {
	authenticated := jwtware.New(jwtware.Config{
		Authenticator: s.auther,
	})
	adminOnly := jwtware.New(jwtware.Config{
		Authenticator: s.auther,
		RequiredRole:  auth.RoleAdmin,
	})

	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to My Portfolio API"})
	})

	users := s.app.Group("/users")
	users.Post("/register", s.RegisterUser)
	users.Post("/", adminOnly, s.CreateUser)

	authGroup := s.app.Group("/auth")
	authGroup.Post("/login", s.Login)
	authGroup.Post("/refresh", s.RefreshToken)
	authGroup.Get("/login/google", s.GoogleLogin)
	authGroup.Get("/callback", s.GoogleCallback)

	blogs := s.app.Group("/blogs")
	blogs.Get("/", s.ListBlogs)
	blogs.Get("/:id", s.GetBlog)
	blogs.Post("/", adminOnly, s.CreateBlog)
	blogs.Delete("/:id", adminOnly, s.DeleteBlog)

	protected := s.app.Group("/protected", authenticated)
	protected.Get("/dashboard", s.Dashboard)
	protected.Get("/profile", s.Profile)
}

func fiberErrorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message})
	}
	return renderError(c, err)
}
