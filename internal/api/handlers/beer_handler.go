package handlers

import (
	"beertrack/domain"
	"beertrack/internal/api/presenters"
	"beertrack/pkg/beer"
	"io"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	BeerHandler interface {
		GetBeers(c *fiber.Ctx) error
		UploadBeer(c *fiber.Ctx) error
		AddManualBeers(c *fiber.Ctx) error
		DecrementBeer(c *fiber.Ctx) error
		DeleteBeer(c *fiber.Ctx) error
	}

	beerHandler struct {
		beerService beer.BeerService
		validator   *validator.Validate
	}
)

func NewBeerHandler(beerService beer.BeerService, validator *validator.Validate) BeerHandler {
	return &beerHandler{
		beerService: beerService,
		validator:   validator,
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrParseID
	}
	return uint(id), nil
}

func (h *beerHandler) GetBeers(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	items, err := h.beerService.GetUserBeers(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetBeers, err)
	}

	return presenters.SuccessResponse(c, domain.BeerListResponse{Items: items}, fiber.StatusOK, domain.MessageSuccessGetBeers)
}

func (h *beerHandler) UploadBeer(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	file, err := c.FormFile("photo")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.ErrEmptyFile)
	}
	if file.Size == 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadBeer, domain.ErrEmptyFile)
	}
	if file.Size > domain.MaxUploadBytes {
		return presenters.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, domain.MessageFailedUploadBeer, domain.ErrFileTooLarge)
	}

	f, err := file.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadBeer, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, domain.MaxUploadBytes+1))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadBeer, err)
	}

	res, err := h.beerService.UploadBeer(c.Context(), raw, c.FormValue("name"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedUploadBeer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadBeer)
}

func (h *beerHandler) AddManualBeers(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.AddManualBeersRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		if req.Count < 1 || req.Count > domain.MaxManualCount {
			err = domain.ErrInvalidCount
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddBeers, err)
	}

	res, err := h.beerService.AddManualBeers(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedAddBeers, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddBeers)
}

func (h *beerHandler) DecrementBeer(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	beerID, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDecrementBeer, err)
	}

	res, err := h.beerService.DecrementBeer(c.Context(), beerID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedDecrementBeer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDecrementBeer)
}

func (h *beerHandler) DeleteBeer(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	beerID, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteBeer, err)
	}

	if err := h.beerService.DeleteBeer(c.Context(), beerID, userID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedDeleteBeer, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"deleted": true}, fiber.StatusOK, domain.MessageSuccessDeleteBeer)
}
