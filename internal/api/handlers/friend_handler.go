package handlers

import (
	"beertrack/domain"
	"beertrack/internal/api/presenters"
	"beertrack/pkg/friend"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FriendHandler interface {
		GetFriends(c *fiber.Ctx) error
		GetRequests(c *fiber.Ctx) error
		SendRequest(c *fiber.Ctx) error
		Respond(c *fiber.Ctx) error
	}

	friendHandler struct {
		friendService friend.FriendService
		validator     *validator.Validate
	}
)

func NewFriendHandler(friendService friend.FriendService, validator *validator.Validate) FriendHandler {
	return &friendHandler{
		friendService: friendService,
		validator:     validator,
	}
}

func (h *friendHandler) GetFriends(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	friends, err := h.friendService.GetFriends(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetFriends, err)
	}

	return presenters.SuccessResponse(c, domain.FriendListResponse{Items: friends}, fiber.StatusOK, domain.MessageSuccessGetFriends)
}

func (h *friendHandler) GetRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.friendService.GetRequests(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetFriendRequests, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFriendRequests)
}

func (h *friendHandler) SendRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.SendFriendRequestRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendFriendRequest, err)
	}

	res, err := h.friendService.SendRequest(c.Context(), userID, req.ToUsername)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedSendFriendRequest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSendFriendRequest)
}

func (h *friendHandler) Respond(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.RespondFriendRequestRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRespondFriendRequest, err)
	}

	if err := h.friendService.Respond(c.Context(), userID, *req); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedRespondFriendRequest, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRespondFriendRequest)
}
