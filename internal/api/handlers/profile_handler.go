package handlers

import (
	"beertrack/domain"
	"beertrack/internal/api/presenters"
	"beertrack/pkg/profile"

	"github.com/gofiber/fiber/v2"
)

type (
	ProfileHandler interface {
		Me(c *fiber.Ctx) error
		GetUser(c *fiber.Ctx) error
		GetUserBeers(c *fiber.Ctx) error
	}

	profileHandler struct {
		profileService profile.ProfileService
	}
)

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &profileHandler{profileService: profileService}
}

func (h *profileHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.profileService.GetMyProfile(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *profileHandler) GetUser(c *fiber.Ctx) error {
	res, err := h.profileService.GetPublicProfile(c.Context(), c.Params("username"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *profileHandler) GetUserBeers(c *fiber.Ctx) error {
	items, err := h.profileService.GetPublicBeers(c.Context(), c.Params("username"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetBeers, err)
	}

	return presenters.SuccessResponse(c, domain.BeerListResponse{Items: items}, fiber.StatusOK, domain.MessageSuccessGetBeers)
}
