package config

import (
	"beertrack/domain"
	"beertrack/internal/api/handlers"
	"beertrack/internal/api/routes"
	"beertrack/internal/middleware"
	"beertrack/internal/utils"
	"beertrack/internal/utils/imaging"
	"beertrack/internal/utils/storage"
	"beertrack/pkg/beer"
	"beertrack/pkg/friend"
	"beertrack/pkg/jwt"
	"beertrack/pkg/profile"
	"beertrack/pkg/user"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Container holds the services shared by the HTTP app and the CLI commands.
type Container struct {
	JWTService     jwt.JWTService
	UserService    user.UserService
	BeerService    beer.BeerService
	FriendService  friend.FriendService
	ProfileService profile.ProfileService

	// Media is set only for the local storage driver.
	Media *storage.Local
}

func newStorage(ctx context.Context) (storage.Storage, *storage.Local, error) {
	switch driver := utils.GetConfig("STORAGE_DRIVER"); driver {
	case "local":
		local, err := storage.NewLocal(utils.GetConfig("MEDIA_ROOT"), utils.GetConfig("MEDIA_URL_BASE"))
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil
	case "s3":
		s3, err := storage.NewAwsS3(ctx,
			utils.GetConfig("AWS_S3_BUCKET"),
			utils.GetConfig("AWS_S3_REGION"),
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
		)
		if err != nil {
			return nil, nil, err
		}
		return s3, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}
}

func NewContainer(ctx context.Context, db *gorm.DB) (*Container, error) {
	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	store, media, err := newStorage(ctx)
	if err != nil {
		return nil, err
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	beerRepository := beer.NewBeerRepository(db)
	friendRepository := friend.NewFriendRepository(db)

	// Service
	jwtService := jwt.NewJWTService(secret)
	ttl := time.Duration(utils.GetConfigInt("SESSION_TTL_DAYS")) * 24 * time.Hour
	userService := user.NewUserService(userRepository, jwtService, ttl)
	beerService := beer.NewBeerService(beerRepository, store, imaging.NewProcessor())
	friendService := friend.NewFriendService(friendRepository, userRepository)
	profileService := profile.NewProfileService(userRepository, beerService, friendService)

	return &Container{
		JWTService:     jwtService,
		UserService:    userService,
		BeerService:    beerService,
		FriendService:  friendService,
		ProfileService: profileService,
		Media:          media,
	}, nil
}

func NewApp(c *Container) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		// Leave room for the multipart envelope around an 8 MiB photo.
		BodyLimit: domain.MaxUploadBytes + 1024*1024,
	})
	middlewares := middleware.NewMiddleware(c.UserService, utils.GetConfig("CORS_ORIGINS"))
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_PER_SECOND"),
		Expiration: 1 * time.Second,
		Next: func(ctx *fiber.Ctx) bool {
			return ctx.Path() == "/metrics"
		},
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	if c.Media != nil {
		log.Infof("serving media from %s at %s", c.Media.Root(), utils.GetConfig("MEDIA_URL_BASE"))
		app.Static(utils.GetConfig("MEDIA_URL_BASE"), c.Media.Root())
	}

	// Handler
	userHandler := handlers.NewUserHandler(c.UserService, validator, c.JWTService, utils.GetConfigBool("SECURE_COOKIES"))
	beerHandler := handlers.NewBeerHandler(c.BeerService, validator)
	friendHandler := handlers.NewFriendHandler(c.FriendService, validator)
	profileHandler := handlers.NewProfileHandler(c.ProfileService)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		BeerHandler:    beerHandler,
		FriendHandler:  friendHandler,
		ProfileHandler: profileHandler,
		Middleware:     middlewares,
		JWTService:     c.JWTService,
	}
	routesConfig.Setup()
	return app, nil
}
