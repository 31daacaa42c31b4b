package middleware

import (
	"beertrack/pkg/jwt"
	"beertrack/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		CORSMiddleware() fiber.Handler
	}

	middleware struct {
		userService user.UserService
		corsOrigins string
	}
)

func NewMiddleware(userService user.UserService, corsOrigins string) Middleware {
	return &middleware{
		userService: userService,
		corsOrigins: corsOrigins,
	}
}

// CORSMiddleware allows credentials only for an explicit origin list; the
// wildcard is served without them.
func (m *middleware) CORSMiddleware() fiber.Handler {
	cfg := cors.Config{
		AllowOrigins: m.corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,OPTIONS",
	}
	if m.corsOrigins != "" && m.corsOrigins != "*" {
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
