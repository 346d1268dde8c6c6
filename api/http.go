package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/sicko7947/recordkit"
	"github.com/sicko7947/recordkit/store"
)

// Server serves record operations over HTTP
type Server struct {
	resolver *recordkit.Resolver
	logger   zerolog.Logger
}

// NewServer creates an HTTP server around resolver
func NewServer(resolver *recordkit.Resolver, logger zerolog.Logger) *Server {
	return &Server{
		resolver: resolver,
		logger:   logger,
	}
}

// App creates a Fiber app with all routes registered
func (s *Server) App() *fiber.App {
	app := fiber.New()
	s.RegisterRoutes(app)
	return app
}

// RegisterRoutes registers all HTTP routes
func (s *Server) RegisterRoutes(app *fiber.App) {
	// Health check endpoint
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "recordkit",
		})
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	records := v1.Group("/records")
	records.Post("/", s.handleInsert)
	records.Get("/:name", s.handleFetch)
}

// handleInsert conditionally inserts a new record
func (s *Server) handleInsert(c fiber.Ctx) error {
	var input recordkit.InsertInput
	if err := c.Bind().JSON(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(Envelope{
			Error: &ErrorBody{Type: recordkit.ErrTypeValidation, Message: "Invalid request body"},
		})
	}

	record, err := s.resolver.Insert(c.Context(), input)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dataEnvelope(record))
}

// handleFetch fetches a record by name. A missing record is a 200 with null data.
func (s *Server) handleFetch(c fiber.Ctx) error {
	record, err := s.resolver.Fetch(c.Context(), recordkit.FetchInput{Name: c.Params("name")})
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(dataEnvelope(record))
}

func (s *Server) writeError(c fiber.Ctx, err error) error {
	env := errorEnvelope(err)
	status := statusFor(env.Error.Type)
	if status >= fiber.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
	}
	return c.Status(status).JSON(env)
}

func statusFor(errType string) int {
	switch errType {
	case recordkit.ErrTypeValidation, store.ErrTypeValidationException:
		return fiber.StatusBadRequest
	case recordkit.ErrTypeConditionalCheckFailed:
		return fiber.StatusConflict
	case ErrTypeInternal:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadGateway
	}
}
