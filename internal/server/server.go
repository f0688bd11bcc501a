package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Chitrak-Aseri/Agents/internal/logging"
	"github.com/Chitrak-Aseri/Agents/internal/providers"
	"github.com/Chitrak-Aseri/Agents/internal/redact"
	"github.com/Chitrak-Aseri/Agents/internal/review"
)

// GenerateRoute is the comment review endpoint.
const GenerateRoute = "/v1/api/generate"

// Factory builds a provider for one request.
type Factory func(cfg providers.Config) (providers.Provider, error)

// Options configures New.
type Options struct {
	// Env resolves provider credentials; requests never carry them.
	Env      providers.Env
	Factory  Factory
	Observer logging.Observer
	// RedactSecrets scrubs the submitted code before it reaches the model.
	RedactSecrets bool
}

// Server serves comment reviews over HTTP.
type Server struct {
	echo *echo.Echo
	opts Options
}

// GenerateRequest is the body of POST /v1/api/generate.
type GenerateRequest struct {
	Provider    ProviderBlock `json:"provider"`
	ModelName   string        `json:"model_name"`
	Temperature *float64      `json:"temperature,omitempty"`
	Code        string        `json:"code"`
	FileStruct  string        `json:"file_struct"`
}

// ProviderBlock selects the backend, e.g. {"type": "openai"}.
type ProviderBlock struct {
	Type string `json:"type"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// New builds the server and registers its routes.
func New(opts Options) *Server {
	if opts.Factory == nil {
		env := opts.Env
		opts.Factory = func(cfg providers.Config) (providers.Provider, error) {
			return providers.New(cfg, env)
		}
	}
	if opts.Observer == nil {
		opts.Observer = logging.Nop{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger)

	s := &Server{echo: e, opts: opts}
	e.POST(GenerateRoute, s.Generate)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		errc <- s.echo.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

// Generate runs one comment review and returns the validated result.
func (s *Server) Generate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body"})
	}
	if req.Provider.Type == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "provider.type is required"})
	}
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "code is required"})
	}

	p, err := s.opts.Factory(providers.Config{
		Kind:        providers.ParseKind(req.Provider.Type),
		ModelName:   req.ModelName,
		Temperature: req.Temperature,
	})
	if err != nil {
		var unsupported *providers.UnsupportedProviderError
		var stubbed *providers.NotImplementedProviderError
		if errors.As(err, &unsupported) || errors.As(err, &stubbed) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		}
		log.Error().Err(err).Str("provider", req.Provider.Type).Msg("building provider")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
	}

	code := req.Code
	if s.opts.RedactSecrets {
		code, _ = redact.Secrets(code)
	}

	result, err := review.RunCommentReview(c.Request().Context(),
		providers.Observe(p, s.opts.Observer), req.FileStruct, code)
	if err != nil {
		log.Error().Err(err).Str("provider", p.Name()).Msg("comment review failed")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		log.Info().
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Int("status", c.Response().Status).
			Dur("took", time.Since(start)).
			Msg("request")
		return err
	}
}
