package friend

import (
	"beertrack/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FriendRepository interface {
		Transaction(ctx context.Context, fn func(repo FriendRepository) error) error

		// Friendships are looked up by canonical pair only.
		FriendshipExists(ctx context.Context, userA, userB uint) (bool, error)
		// CreateFriendship reports false when the pair was already stored.
		CreateFriendship(ctx context.Context, userA, userB uint) (bool, error)
		GetFriendships(ctx context.Context, userID uint) ([]*entities.Friendship, error)
		CountFriendships(ctx context.Context, userID uint) (int64, error)

		// PendingRequestExists checks both directions.
		PendingRequestExists(ctx context.Context, userA, userB uint) (bool, error)
		CreateRequest(ctx context.Context, request *entities.FriendRequest) error
		GetRequestForUpdate(ctx context.Context, id uint) (*entities.FriendRequest, error)
		UpdateRequestStatus(ctx context.Context, id uint, status entities.FriendRequestStatus) error
		GetPendingIncoming(ctx context.Context, userID uint) ([]*entities.FriendRequest, error)
		GetPendingOutgoing(ctx context.Context, userID uint) ([]*entities.FriendRequest, error)
	}

	friendRepository struct {
		db *gorm.DB
	}
)

func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Transaction(ctx context.Context, fn func(repo FriendRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&friendRepository{db: tx})
	})
}

func (r *friendRepository) FriendshipExists(ctx context.Context, userA, userB uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Friendship{}).
		Where("user_a = ? AND user_b = ?", userA, userB).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *friendRepository) CreateFriendship(ctx context.Context, userA, userB uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.Friendship{UserA: userA, UserB: userB})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *friendRepository) GetFriendships(ctx context.Context, userID uint) ([]*entities.Friendship, error) {
	var friendships []*entities.Friendship
	if err := r.db.WithContext(ctx).
		Where("user_a = ? OR user_b = ?", userID, userID).
		Find(&friendships).Error; err != nil {
		return nil, err
	}
	return friendships, nil
}

func (r *friendRepository) CountFriendships(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Friendship{}).
		Where("user_a = ? OR user_b = ?", userID, userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *friendRepository) PendingRequestExists(ctx context.Context, userA, userB uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.FriendRequest{}).
		Where("status = ?", entities.FriendRequestPending).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", userA, userB, userB, userA).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *friendRepository) CreateRequest(ctx context.Context, request *entities.FriendRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *friendRepository) GetRequestForUpdate(ctx context.Context, id uint) (*entities.FriendRequest, error) {
	var request entities.FriendRequest
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *friendRepository) UpdateRequestStatus(ctx context.Context, id uint, status entities.FriendRequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.FriendRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *friendRepository) GetPendingIncoming(ctx context.Context, userID uint) ([]*entities.FriendRequest, error) {
	return r.pending(ctx, "to_user_id = ?", userID)
}

func (r *friendRepository) GetPendingOutgoing(ctx context.Context, userID uint) ([]*entities.FriendRequest, error) {
	return r.pending(ctx, "from_user_id = ?", userID)
}

func (r *friendRepository) pending(ctx context.Context, cond string, userID uint) ([]*entities.FriendRequest, error) {
	var requests []*entities.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("status = ?", entities.FriendRequestPending).
		Where(cond, userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
