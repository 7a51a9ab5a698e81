package models

import "time"

type Review struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	User      User
	ProductID uint   `gorm:"index;not null"`
	Text      string `gorm:"not null"`
	Rate      int    `gorm:"not null"` // 0..5
	CreatedAt time.Time
}
