package profile

import (
	"beertrack/domain"
	"beertrack/entities"
	"beertrack/pkg/beer"
	"beertrack/pkg/friend"
	"beertrack/pkg/user"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type (
	// ProfileService aggregates identity, ledger and friendship data.
	// Nothing is cached; every call recomputes the counts.
	ProfileService interface {
		GetMyProfile(ctx context.Context, userID uint) (domain.ProfileResponse, error)
		GetPublicProfile(ctx context.Context, username string) (domain.ProfileResponse, error)
		GetPublicBeers(ctx context.Context, username string) ([]domain.BeerResponse, error)
	}

	profileService struct {
		userRepository user.UserRepository
		beerService    beer.BeerService
		friendService  friend.FriendService
	}
)

func NewProfileService(userRepository user.UserRepository, beerService beer.BeerService, friendService friend.FriendService) ProfileService {
	return &profileService{
		userRepository: userRepository,
		beerService:    beerService,
		friendService:  friendService,
	}
}

func (s *profileService) GetMyProfile(ctx context.Context, userID uint) (domain.ProfileResponse, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{}, domain.ErrUserNotFound
		}
		return domain.ProfileResponse{}, err
	}
	return s.build(ctx, u)
}

func (s *profileService) GetPublicProfile(ctx context.Context, username string) (domain.ProfileResponse, error) {
	u, err := s.lookup(ctx, username)
	if err != nil {
		return domain.ProfileResponse{}, err
	}
	return s.build(ctx, u)
}

func (s *profileService) GetPublicBeers(ctx context.Context, username string) ([]domain.BeerResponse, error) {
	u, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.beerService.GetUserBeers(ctx, u.ID)
}

// lookup is case-sensitive.
func (s *profileService) lookup(ctx context.Context, username string) (*entities.User, error) {
	u, err := s.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *profileService) build(ctx context.Context, u *entities.User) (domain.ProfileResponse, error) {
	total, err := s.beerService.TotalBeers(ctx, u.ID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}
	friends, err := s.friendService.CountFriends(ctx, u.ID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	var joined *time.Time
	if !u.JoinedAt.IsZero() {
		joined = &u.JoinedAt
	}

	return domain.ProfileResponse{
		ID:           u.ID,
		Username:     u.Username,
		JoinedAt:     joined,
		TotalBeers:   total,
		FriendsCount: friends,
	}, nil
}
