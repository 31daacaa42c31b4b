package domain

import "time"

const (
	MaxManualCount = 500
	MaxUploadBytes = 8 * 1024 * 1024
)

var (
	MessageSuccessAddBeers      = "beers added successfully"
	MessageSuccessUploadBeer    = "beer uploaded successfully"
	MessageSuccessGetBeers      = "beers retrieved successfully"
	MessageSuccessDecrementBeer = "beer decremented successfully"
	MessageSuccessDeleteBeer    = "beer deleted successfully"

	MessageFailedAddBeers      = "failed to add beers"
	MessageFailedUploadBeer    = "failed to upload beer"
	MessageFailedGetBeers      = "failed to retrieve beers"
	MessageFailedDecrementBeer = "failed to decrement beer"
	MessageFailedDeleteBeer    = "failed to delete beer"

	ErrBeerNotFound     = kind(ErrNotFound, "beer not found")
	ErrInvalidCount     = kind(ErrInvalidOperation, "count must be between 1 and 500")
	ErrEmptyFile        = kind(ErrInvalidPayload, "empty file")
	ErrInvalidImage     = kind(ErrInvalidPayload, "invalid image")
	ErrUnsupportedImage = kind(ErrInvalidPayload, "unsupported image type")
	ErrFileTooLarge     = kind(ErrPayloadTooLarge, "file too large (max 8MB)")
)

type (
	AddManualBeersRequest struct {
		Count int    `json:"count" form:"count" validate:"required,min=1,max=500"`
		Name  string `json:"name" form:"name" validate:"omitempty,max=120"`
	}

	BeerResponse struct {
		ID             uint      `json:"id"`
		Name           *string   `json:"name"`
		Timestamp      time.Time `json:"timestamp"`
		IsManual       bool      `json:"is_manual"`
		Quantity       int       `json:"quantity"`
		ImageURL       *string   `json:"image_url"`
		ImageSizeBytes *int64    `json:"image_size_bytes"`
	}

	// DecrementResult is either an updated Item or Deleted, never both.
	DecrementResult struct {
		Item    *BeerResponse `json:"item,omitempty"`
		Deleted bool          `json:"deleted,omitempty"`
	}

	BeerListResponse struct {
		Items []BeerResponse `json:"items"`
	}
)
