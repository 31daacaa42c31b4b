package beer

import (
	"beertrack/domain"
	"beertrack/entities"
	"beertrack/internal/utils/imaging"
	"beertrack/internal/utils/metrics"
	"beertrack/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	BeerService interface {
		AddManualBeers(ctx context.Context, req domain.AddManualBeersRequest, userID uint) (domain.BeerResponse, error)
		UploadBeer(ctx context.Context, raw []byte, name string, userID uint) (domain.BeerResponse, error)
		DecrementBeer(ctx context.Context, beerID, userID uint) (domain.DecrementResult, error)
		DeleteBeer(ctx context.Context, beerID, userID uint) error
		GetUserBeers(ctx context.Context, userID uint) ([]domain.BeerResponse, error)
		TotalBeers(ctx context.Context, userID uint) (int64, error)
		BackfillImageSizes(ctx context.Context) (int, error)
	}

	beerService struct {
		beerRepository BeerRepository
		storage        storage.Storage
		images         imaging.Processor
		now            func() time.Time
	}
)

func NewBeerService(beerRepository BeerRepository, store storage.Storage, images imaging.Processor) BeerService {
	return &beerService{
		beerRepository: beerRepository,
		storage:        store,
		images:         images,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func optionalName(name string) *string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &name
}

func (s *beerService) toResponse(b *entities.Beer) domain.BeerResponse {
	res := domain.BeerResponse{
		ID:             b.ID,
		Name:           b.Name,
		Timestamp:      b.CreatedAt,
		IsManual:       b.IsManual,
		Quantity:       b.Quantity,
		ImageSizeBytes: b.ImageSizeBytes,
	}
	if b.HasImage() {
		url := s.storage.URL(*b.ImagePath)
		res.ImageURL = &url
	}
	return res
}

// AddManualBeers always creates a new row, even when a batch with the same
// name exists, so history keeps its timestamps.
func (s *beerService) AddManualBeers(ctx context.Context, req domain.AddManualBeersRequest, userID uint) (domain.BeerResponse, error) {
	if req.Count < 1 || req.Count > domain.MaxManualCount {
		return domain.BeerResponse{}, domain.ErrInvalidCount
	}

	beer := &entities.Beer{
		UserID:   userID,
		Name:     optionalName(req.Name),
		IsManual: true,
		Quantity: req.Count,
	}
	if err := s.beerRepository.CreateBeer(ctx, beer); err != nil {
		return domain.BeerResponse{}, err
	}

	metrics.BeersRecorded.WithLabelValues(metrics.SourceManual).Add(float64(beer.Quantity))
	return s.toResponse(beer), nil
}

func (s *beerService) UploadBeer(ctx context.Context, raw []byte, name string, userID uint) (domain.BeerResponse, error) {
	img, err := s.images.Process(raw)
	if err != nil {
		return domain.BeerResponse{}, err
	}

	key := fmt.Sprintf("%d_%d_%s.%s", userID, s.now().Unix(), uuid.NewString()[:8], img.Ext)
	if err := s.storage.Save(ctx, key, img.Data, img.ContentType); err != nil {
		return domain.BeerResponse{}, fmt.Errorf("store image: %w", err)
	}

	size := img.Size()
	beer := &entities.Beer{
		UserID:         userID,
		Name:           optionalName(name),
		IsManual:       false,
		Quantity:       1,
		ImagePath:      &key,
		ImageSizeBytes: &size,
	}
	if err := s.beerRepository.CreateBeer(ctx, beer); err != nil {
		s.removeImage(ctx, beer)
		return domain.BeerResponse{}, err
	}

	metrics.BeersRecorded.WithLabelValues(metrics.SourcePhoto).Inc()
	return s.toResponse(beer), nil
}

// DecrementBeer takes exactly one unit off the batch. A batch of one is
// deleted instead of being left at zero.
func (s *beerService) DecrementBeer(ctx context.Context, beerID, userID uint) (domain.DecrementResult, error) {
	var (
		updated *entities.Beer
		removed *entities.Beer
	)

	err := s.beerRepository.Transaction(ctx, func(repo BeerRepository) error {
		beer, err := repo.GetOwnedBeerForUpdate(ctx, beerID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBeerNotFound
			}
			return err
		}

		if beer.Quantity > 1 {
			beer.Quantity--
			if err := repo.UpdateQuantity(ctx, beer.ID, beer.Quantity); err != nil {
				return err
			}
			updated = beer
			return nil
		}

		if err := repo.DeleteBeer(ctx, beer.ID); err != nil {
			return err
		}
		removed = beer
		return nil
	})
	if err != nil {
		return domain.DecrementResult{}, err
	}

	metrics.BeersRemoved.WithLabelValues(metrics.ReasonDecrement).Inc()
	if removed != nil {
		s.removeImage(ctx, removed)
		return domain.DecrementResult{Deleted: true}, nil
	}

	item := s.toResponse(updated)
	return domain.DecrementResult{Item: &item}, nil
}

func (s *beerService) DeleteBeer(ctx context.Context, beerID, userID uint) error {
	var removed *entities.Beer

	err := s.beerRepository.Transaction(ctx, func(repo BeerRepository) error {
		beer, err := repo.GetOwnedBeerForUpdate(ctx, beerID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBeerNotFound
			}
			return err
		}
		if err := repo.DeleteBeer(ctx, beer.ID); err != nil {
			return err
		}
		removed = beer
		return nil
	})
	if err != nil {
		return err
	}

	metrics.BeersRemoved.WithLabelValues(metrics.ReasonDelete).Add(float64(removed.Quantity))
	s.removeImage(ctx, removed)
	return nil
}

func (s *beerService) GetUserBeers(ctx context.Context, userID uint) ([]domain.BeerResponse, error) {
	beers, err := s.beerRepository.GetUserBeers(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.BeerResponse, 0, len(beers))
	for _, b := range beers {
		response = append(response, s.toResponse(b))
	}
	return response, nil
}

func (s *beerService) TotalBeers(ctx context.Context, userID uint) (int64, error) {
	return s.beerRepository.SumQuantity(ctx, userID)
}

// BackfillImageSizes fills image_size_bytes for rows that predate the column.
// Objects that no longer exist are skipped. Safe to run repeatedly.
func (s *beerService) BackfillImageSizes(ctx context.Context) (int, error) {
	beers, err := s.beerRepository.GetBeersMissingImageSize(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, b := range beers {
		if !b.HasImage() {
			continue
		}
		size, err := s.storage.Size(ctx, *b.ImagePath)
		if err != nil {
			if !errors.Is(err, storage.ErrObjectNotFound) {
				log.Warnf("backfill: stat image for beer %d (%s): %v", b.ID, *b.ImagePath, err)
			}
			continue
		}
		if err := s.beerRepository.UpdateImageSize(ctx, b.ID, size); err != nil {
			return changed, err
		}
		changed++
	}

	if changed > 0 {
		log.Infof("backfill: recorded image size for %d beers", changed)
	}
	return changed, nil
}

// removeImage is best effort: the row change is already committed and a
// storage failure is only logged.
func (s *beerService) removeImage(ctx context.Context, b *entities.Beer) {
	if !b.HasImage() {
		return
	}
	if err := s.storage.Delete(ctx, *b.ImagePath); err != nil {
		log.Warnf("failed to remove image %s of beer %d: %v", *b.ImagePath, b.ID, err)
	}
}
