package friend

import (
	"beertrack/domain"
	"beertrack/entities"
	"beertrack/internal/utils/metrics"
	"beertrack/pkg/user"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type (
	FriendService interface {
		SendRequest(ctx context.Context, fromID uint, toUsername string) (domain.FriendRequestItem, error)
		Respond(ctx context.Context, responderID uint, req domain.RespondFriendRequestRequest) error
		GetFriends(ctx context.Context, userID uint) ([]domain.UserSummary, error)
		GetRequests(ctx context.Context, userID uint) (domain.FriendRequestsResponse, error)
		CountFriends(ctx context.Context, userID uint) (int64, error)
	}

	friendService struct {
		friendRepository FriendRepository
		userRepository   user.UserRepository
	}
)

func NewFriendService(friendRepository FriendRepository, userRepository user.UserRepository) FriendService {
	return &friendService{
		friendRepository: friendRepository,
		userRepository:   userRepository,
	}
}

// CanonicalPair orders two user ids so that one friendship row stands for
// the unordered pair.
func CanonicalPair(a, b uint) (uint, uint) {
	if a < b {
		return a, b
	}
	return b, a
}

func (s *friendService) SendRequest(ctx context.Context, fromID uint, toUsername string) (domain.FriendRequestItem, error) {
	to, err := s.userRepository.GetUserByUsername(ctx, strings.TrimSpace(toUsername))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FriendRequestItem{}, domain.ErrUserNotFound
		}
		return domain.FriendRequestItem{}, err
	}
	if to.ID == fromID {
		return domain.FriendRequestItem{}, domain.ErrSelfFriendRequest
	}

	request := &entities.FriendRequest{
		FromUserID: fromID,
		ToUserID:   to.ID,
		Status:     entities.FriendRequestPending,
	}

	err = s.friendRepository.Transaction(ctx, func(repo FriendRepository) error {
		a, b := CanonicalPair(fromID, to.ID)
		friends, err := repo.FriendshipExists(ctx, a, b)
		if err != nil {
			return err
		}
		if friends {
			return domain.ErrAlreadyFriends
		}

		pending, err := repo.PendingRequestExists(ctx, fromID, to.ID)
		if err != nil {
			return err
		}
		if pending {
			return domain.ErrFriendRequestPending
		}

		if err := repo.CreateRequest(ctx, request); err != nil {
			// The partial unique index on pending pairs catches the race
			// the check above cannot.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrFriendRequestPending
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.FriendRequestItem{}, err
	}

	metrics.FriendRequests.WithLabelValues(metrics.OutcomeSent).Inc()
	return domain.FriendRequestItem{
		ID:            request.ID,
		Incoming:      false,
		OtherUsername: to.Username,
		CreatedAt:     request.CreatedAt,
	}, nil
}

// Respond resolves a pending request addressed to responderID. Foreign and
// already resolved requests look exactly like missing ones.
func (s *friendService) Respond(ctx context.Context, responderID uint, req domain.RespondFriendRequestRequest) error {
	action := req.Action

	err := s.friendRepository.Transaction(ctx, func(repo FriendRepository) error {
		request, err := repo.GetRequestForUpdate(ctx, req.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrFriendRequestNotFound
			}
			return err
		}
		if request.ToUserID != responderID || request.Status != entities.FriendRequestPending {
			return domain.ErrFriendRequestNotFound
		}

		switch action {
		case domain.FriendActionAccept:
			if err := repo.UpdateRequestStatus(ctx, request.ID, entities.FriendRequestAccepted); err != nil {
				return err
			}
			a, b := CanonicalPair(request.FromUserID, request.ToUserID)
			_, err := repo.CreateFriendship(ctx, a, b)
			return err
		case domain.FriendActionDecline:
			return repo.UpdateRequestStatus(ctx, request.ID, entities.FriendRequestDeclined)
		default:
			return domain.ErrInvalidFriendAction
		}
	})
	if err != nil {
		return err
	}

	if action == domain.FriendActionAccept {
		metrics.FriendRequests.WithLabelValues(metrics.OutcomeAccepted).Inc()
	} else {
		metrics.FriendRequests.WithLabelValues(metrics.OutcomeDeclined).Inc()
	}
	return nil
}

// GetFriends returns the other party of every friendship, ordered by username.
func (s *friendService) GetFriends(ctx context.Context, userID uint) ([]domain.UserSummary, error) {
	friendships, err := s.friendRepository.GetFriendships(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		ids = append(ids, f.Other(userID))
	}

	users, err := s.userRepository.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	friends := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		friends = append(friends, domain.UserSummary{ID: u.ID, Username: u.Username})
	}
	return friends, nil
}

func (s *friendService) GetRequests(ctx context.Context, userID uint) (domain.FriendRequestsResponse, error) {
	incoming, err := s.friendRepository.GetPendingIncoming(ctx, userID)
	if err != nil {
		return domain.FriendRequestsResponse{}, err
	}
	outgoing, err := s.friendRepository.GetPendingOutgoing(ctx, userID)
	if err != nil {
		return domain.FriendRequestsResponse{}, err
	}

	ids := make([]uint, 0, len(incoming)+len(outgoing))
	for _, r := range incoming {
		ids = append(ids, r.FromUserID)
	}
	for _, r := range outgoing {
		ids = append(ids, r.ToUserID)
	}

	users, err := s.userRepository.GetUsersByIDs(ctx, ids)
	if err != nil {
		return domain.FriendRequestsResponse{}, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	username := func(id uint) string {
		if name, ok := names[id]; ok {
			return name
		}
		return domain.UnknownUsername
	}

	response := domain.FriendRequestsResponse{
		Incoming: make([]domain.FriendRequestItem, 0, len(incoming)),
		Outgoing: make([]domain.FriendRequestItem, 0, len(outgoing)),
	}
	for _, r := range incoming {
		response.Incoming = append(response.Incoming, domain.FriendRequestItem{
			ID:            r.ID,
			Incoming:      true,
			OtherUsername: username(r.FromUserID),
			CreatedAt:     r.CreatedAt,
		})
	}
	for _, r := range outgoing {
		response.Outgoing = append(response.Outgoing, domain.FriendRequestItem{
			ID:            r.ID,
			Incoming:      false,
			OtherUsername: username(r.ToUserID),
			CreatedAt:     r.CreatedAt,
		})
	}
	return response, nil
}

func (s *friendService) CountFriends(ctx context.Context, userID uint) (int64, error) {
	return s.friendRepository.CountFriendships(ctx, userID)
}
