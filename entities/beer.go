package entities

import "time"

// Beer is one consumption batch. Quantity is the number of units the row
// stands for and is never below 1.
type Beer struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Name           *string   `gorm:"type:varchar(120)" json:"name"`
	ImagePath      *string   `gorm:"type:text" json:"image_path,omitempty"`
	ImageSizeBytes *int64    `json:"image_size_bytes"`
	IsManual       bool      `gorm:"not null;default:false" json:"is_manual"`
	Quantity       int       `gorm:"not null;default:1;check:chk_beers_quantity_positive,quantity >= 1" json:"quantity"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (b *Beer) HasImage() bool {
	return b.ImagePath != nil && *b.ImagePath != ""
}
