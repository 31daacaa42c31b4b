package entities

import "time"

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

// FriendRequest is never reopened once resolved; UpdatedAt records when it
// was answered.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	FromUserID uint                `gorm:"not null;index" json:"from_user_id"`
	ToUserID   uint                `gorm:"not null;index" json:"to_user_id"`
	Status     FriendRequestStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	Timestamp

	FromUser *User `gorm:"foreignKey:FromUserID;constraint:OnDelete:CASCADE" json:"-"`
	ToUser   *User `gorm:"foreignKey:ToUserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Friendship is stored once per unordered pair with UserA < UserB.
type Friendship struct {
	UserA uint      `gorm:"primaryKey;autoIncrement:false;check:chk_friendships_canonical,user_a < user_b" json:"user_a"`
	UserB uint      `gorm:"primaryKey;autoIncrement:false;index" json:"user_b"`
	Since time.Time `gorm:"autoCreateTime" json:"since"`

	A *User `gorm:"foreignKey:UserA;constraint:OnDelete:CASCADE" json:"-"`
	B *User `gorm:"foreignKey:UserB;constraint:OnDelete:CASCADE" json:"-"`
}

// Other returns the id of the party that is not userID.
func (f *Friendship) Other(userID uint) uint {
	if f.UserA == userID {
		return f.UserB
	}
	return f.UserA
}
