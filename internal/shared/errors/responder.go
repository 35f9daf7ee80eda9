package errors

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// RetryAfterUnavailable is the Retry-After value, in seconds, sent with 503 problems.
const RetryAfterUnavailable = 5

// ErrorMapper turns a service error into a ProblemDetail when it recognises it.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem+json responses for the POS API.
// Mappers are tried in order; the first match wins.
type Responder struct {
	mappers []ErrorMapper
	logger  *slog.Logger
}

// NewResponder creates a responder with the given mapper chain.
func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// WithLogger sets the logger used for errors no mapper recognises.
func (r *Responder) WithLogger(logger *slog.Logger) *Responder {
	r.logger = logger
	return r
}

// Respond sends problem with the request path as instance.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if problem.Status == http.StatusServiceUnavailable {
		c.Header("Retry-After", strconv.Itoa(RetryAfterUnavailable))
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError maps err and responds. Unrecognised errors become a 500
// with a generic detail and are logged in full.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.log().ErrorContext(c.Request.Context(), "unmapped service error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
	)
	// unmapped errors may carry driver or stack details
	r.Respond(c, ErrInternal.WithDetail("unexpected error"))
}

func (r *Responder) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}
