package presenters

import (
	"errors"
	"testing"

	"beertrack/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrTokenExpired, fiber.StatusUnauthorized},
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{domain.ErrBeerNotFound, fiber.StatusNotFound},
		{domain.ErrFriendRequestNotFound, fiber.StatusNotFound},
		{domain.ErrUsernameTaken, fiber.StatusConflict},
		{domain.ErrAlreadyFriends, fiber.StatusConflict},
		{domain.ErrSelfFriendRequest, fiber.StatusBadRequest},
		{domain.ErrInvalidCount, fiber.StatusBadRequest},
		{domain.ErrUnsupportedImage, fiber.StatusBadRequest},
		{domain.ErrFileTooLarge, fiber.StatusRequestEntityTooLarge},
		{errors.New("connection refused"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFromError(tc.err), tc.err.Error())
	}
}
