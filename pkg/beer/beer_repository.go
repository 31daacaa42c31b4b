package beer

import (
	"beertrack/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	BeerRepository interface {
		// Transaction runs fn against a repository bound to one database
		// transaction.
		Transaction(ctx context.Context, fn func(repo BeerRepository) error) error

		CreateBeer(ctx context.Context, beer *entities.Beer) error
		// GetOwnedBeerForUpdate locks the row; it returns
		// gorm.ErrRecordNotFound for rows owned by someone else.
		GetOwnedBeerForUpdate(ctx context.Context, id, userID uint) (*entities.Beer, error)
		UpdateQuantity(ctx context.Context, id uint, quantity int) error
		DeleteBeer(ctx context.Context, id uint) error
		GetUserBeers(ctx context.Context, userID uint) ([]*entities.Beer, error)
		SumQuantity(ctx context.Context, userID uint) (int64, error)

		GetBeersMissingImageSize(ctx context.Context) ([]*entities.Beer, error)
		UpdateImageSize(ctx context.Context, id uint, size int64) error
	}

	beerRepository struct {
		db *gorm.DB
	}
)

func NewBeerRepository(db *gorm.DB) BeerRepository {
	return &beerRepository{db: db}
}

func (r *beerRepository) Transaction(ctx context.Context, fn func(repo BeerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&beerRepository{db: tx})
	})
}

func (r *beerRepository) CreateBeer(ctx context.Context, beer *entities.Beer) error {
	return r.db.WithContext(ctx).Create(beer).Error
}

func (r *beerRepository) GetOwnedBeerForUpdate(ctx context.Context, id, userID uint) (*entities.Beer, error) {
	var beer entities.Beer
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&beer).Error; err != nil {
		return nil, err
	}
	return &beer, nil
}

func (r *beerRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&entities.Beer{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *beerRepository) DeleteBeer(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Beer{}).Error
}

func (r *beerRepository) GetUserBeers(ctx context.Context, userID uint) ([]*entities.Beer, error) {
	var beers []*entities.Beer
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&beers).Error; err != nil {
		return nil, err
	}
	return beers, nil
}

func (r *beerRepository) SumQuantity(ctx context.Context, userID uint) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Beer{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *beerRepository) GetBeersMissingImageSize(ctx context.Context) ([]*entities.Beer, error) {
	var beers []*entities.Beer
	if err := r.db.WithContext(ctx).
		Where("image_path IS NOT NULL AND image_path <> ''").
		Where("image_size_bytes IS NULL OR image_size_bytes = 0").
		Find(&beers).Error; err != nil {
		return nil, err
	}
	return beers, nil
}

func (r *beerRepository) UpdateImageSize(ctx context.Context, id uint, size int64) error {
	return r.db.WithContext(ctx).
		Model(&entities.Beer{}).
		Where("id = ?", id).
		Update("image_size_bytes", size).Error
}
