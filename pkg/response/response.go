// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dominoleague/league-service/internal/repository"
	"github.com/dominoleague/league-service/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Not found is checked before status-write failures so finishing an unknown
// competition still reads as 404.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict, ErrorPayload{Error: "invalid_state", Message: err.Error()}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	case errors.Is(err, service.ErrStatusWrite):
		return http.StatusServiceUnavailable, ErrorPayload{Error: "status_write_failed", Message: "leaderboard computed but competition not finished; retry"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
