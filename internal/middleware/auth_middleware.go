package middleware

import (
	"beertrack/domain"
	"beertrack/internal/api/presenters"
	"beertrack/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SessionToken returns the signed session value from the session cookie, or
// from an Authorization bearer header when no cookie is present.
func SessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(domain.SessionCookieName); token != "" {
		return token
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := SessionToken(c)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageNotAuthenticated, domain.ErrTokenNotFound)
		}

		sessionID, err := jwtService.GetSessionIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		u, err := m.userService.Authenticate(c.Context(), sessionID)
		if err != nil {
			return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageNotAuthenticated, err)
		}

		c.Locals("user_id", u.ID)
		c.Locals("username", u.Username)
		c.Locals("session_id", sessionID)
		return c.Next()
	}
}
