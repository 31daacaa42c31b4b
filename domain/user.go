package domain

import "time"

// MaxPasswordBytes is the bcrypt input limit.
const MaxPasswordBytes = 72

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "user logged in successfully"
	MessageSuccessLogout     = "user logged out successfully"
	MessageSuccessGetProfile = "profile retrieved successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetProfile = "failed to retrieve profile"

	ErrUserNotFound       = kind(ErrNotFound, "user not found")
	ErrUsernameTaken      = kind(ErrConflict, "username already taken")
	ErrInvalidUserData    = kind(ErrInvalidOperation, "invalid data")
	ErrInvalidCredentials = kind(ErrUnauthenticated, "invalid credentials")
	ErrUserMissing        = kind(ErrUnauthenticated, "user missing")
)

type (
	RegisterRequest struct {
		Username string `json:"username" validate:"required,max=64"`
		Password string `json:"password" validate:"required,max=72"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	// LoginResponse carries the signed cookie value; it is also set as the
	// session cookie by the handler.
	LoginResponse struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}

	UserSummary struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}

	ProfileResponse struct {
		ID           uint       `json:"id"`
		Username     string     `json:"username"`
		JoinedAt     *time.Time `json:"joined_at"`
		TotalBeers   int64      `json:"total_beers"`
		FriendsCount int64      `json:"friends_count"`
	}
)
