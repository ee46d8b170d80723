package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dominoleague/league-service/internal/repository"
	"github.com/dominoleague/league-service/internal/service"
)

func TestPlayerService_CreatePlayer(t *testing.T) {
	svc := service.NewPlayerService(newFakePlayerRepo(nil), zerolog.New(io.Discard))

	cases := []struct {
		name  string
		pname string
		phone string
		field string
	}{
		{"empty name", "   ", "", "name"},
		{"too short", "A", "", "name"},
		{"bad phone", "Zé Carlos", "9999-0000", "phone"},
		{"ok without phone", "Zé Carlos", "", ""},
		{"ok with phone", "Maria", "+5581999990000", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := svc.CreatePlayer(context.Background(), tc.pname, tc.phone)
			if tc.field == "" {
				require.NoError(t, err)
				assert.NotEmpty(t, p.ID)
				return
			}
			require.ErrorIs(t, err, service.ErrInvalidInput)
			assert.Equal(t, tc.field, service.FieldErrors(err)[0].Field)
		})
	}
}

func TestPlayerService_GetPlayer(t *testing.T) {
	svc := service.NewPlayerService(newFakePlayerRepo(map[string]string{p1: "Ana"}), zerolog.New(io.Discard))

	p, err := svc.GetPlayer(context.Background(), p1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)

	_, err = svc.GetPlayer(context.Background(), uid(3))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.GetPlayer(context.Background(), "")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, service.FieldErrors(nil))
	assert.Nil(t, service.FieldErrors(repository.ErrNotFound))
	assert.Nil(t, service.NewInvalidInputError(nil))
}
