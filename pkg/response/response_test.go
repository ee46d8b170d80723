package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dominoleague/league-service/internal/repository"
	"github.com/dominoleague/league-service/internal/service"
	"github.com/dominoleague/league-service/pkg/response"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"nil", nil, http.StatusOK, "ok"},
		{"invalid input", service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "x"}}), http.StatusBadRequest, "invalid_input"},
		{"not found wrapped", fmt.Errorf("resolve player: %w", repository.ErrNotFound), http.StatusNotFound, "not_found"},
		{"invalid state", fmt.Errorf("%w: pending", service.ErrInvalidState), http.StatusConflict, "invalid_state"},
		{"already exists", repository.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"conflict", repository.ErrConflict, http.StatusConflict, "conflict"},
		{"status write", fmt.Errorf("%w: %w", service.ErrStatusWrite, errors.New("timeout")), http.StatusServiceUnavailable, "status_write_failed"},
		{"status write on missing competition", fmt.Errorf("%w: %w", service.ErrStatusWrite, repository.ErrNotFound), http.StatusNotFound, "not_found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := response.MapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, payload.Error)
		})
	}

	_, payload := response.MapError(service.NewInvalidInputError([]service.FieldError{{Field: "team1", Message: "m"}}))
	assert.Equal(t, "team1", payload.FieldErrors[0].Field)
}
