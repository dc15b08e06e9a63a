package model

import "time"

// At most one review per (user, pickle) pair.
type Review struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_reviews_user_pickle" json:"user_id"`
	PickleID  int64     `gorm:"not null;index;uniqueIndex:idx_reviews_user_pickle" json:"pickle_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
