package domain

import "time"

const (
	FriendActionAccept  = "accept"
	FriendActionDecline = "decline"
)

var (
	MessageSuccessSendFriendRequest    = "friend request sent"
	MessageSuccessRespondFriendRequest = "friend request answered"
	MessageSuccessGetFriends           = "friends retrieved successfully"
	MessageSuccessGetFriendRequests    = "friend requests retrieved successfully"

	MessageFailedSendFriendRequest    = "failed to send friend request"
	MessageFailedRespondFriendRequest = "failed to answer friend request"
	MessageFailedGetFriends           = "failed to retrieve friends"
	MessageFailedGetFriendRequests    = "failed to retrieve friend requests"

	ErrFriendRequestNotFound = kind(ErrNotFound, "request not found")
	ErrSelfFriendRequest     = kind(ErrInvalidOperation, "cannot friend yourself")
	ErrInvalidFriendAction   = kind(ErrInvalidOperation, "invalid action")
	ErrAlreadyFriends        = kind(ErrConflict, "already friends")
	ErrFriendRequestPending  = kind(ErrConflict, "a friend request is already pending")
)

type (
	SendFriendRequestRequest struct {
		ToUsername string `json:"to_username" form:"to_username" validate:"required"`
	}

	RespondFriendRequestRequest struct {
		RequestID uint   `json:"request_id" form:"request_id" validate:"required"`
		Action    string `json:"action" form:"action" validate:"required"`
	}

	FriendListResponse struct {
		Items []UserSummary `json:"items"`
	}

	FriendRequestItem struct {
		ID            uint      `json:"id"`
		Incoming      bool      `json:"incoming"`
		OtherUsername string    `json:"other_username"`
		CreatedAt     time.Time `json:"created_at"`
	}

	FriendRequestsResponse struct {
		Incoming []FriendRequestItem `json:"incoming"`
		Outgoing []FriendRequestItem `json:"outgoing"`
	}
)
