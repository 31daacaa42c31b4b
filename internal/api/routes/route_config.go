package routes

import (
	"beertrack/internal/api/handlers"
	"beertrack/internal/middleware"
	"beertrack/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	BeerHandler    handlers.BeerHandler
	FriendHandler  handlers.FriendHandler
	ProfileHandler handlers.ProfileHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Beers()
	c.Friends()
	c.Profiles()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/logout", c.UserHandler.Logout)
	}
}

func (c *Config) Beers() {
	beers := c.App.Group("/api/v1/beers", c.Middleware.AuthMiddleware(c.JWTService))
	beers.Get("", c.BeerHandler.GetBeers)
	beers.Post("/upload", c.BeerHandler.UploadBeer)
	beers.Post("/add_count", c.BeerHandler.AddManualBeers)
	beers.Post("/:id/decrement", c.BeerHandler.DecrementBeer)
	beers.Post("/:id/delete", c.BeerHandler.DeleteBeer)
}

func (c *Config) Friends() {
	friends := c.App.Group("/api/v1/friends", c.Middleware.AuthMiddleware(c.JWTService))
	friends.Get("", c.FriendHandler.GetFriends)
	friends.Get("/requests", c.FriendHandler.GetRequests)
	friends.Post("/request", c.FriendHandler.SendRequest)
	friends.Post("/respond", c.FriendHandler.Respond)
}

func (c *Config) Profiles() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	c.App.Get("/api/v1/profile", auth, c.ProfileHandler.Me)

	users := c.App.Group("/api/v1/users", auth)
	users.Get("/:username", c.ProfileHandler.GetUser)
	users.Get("/:username/beers", c.ProfileHandler.GetUserBeers)
}
