package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID        uint            `gorm:"primaryKey"`
	ProductID uint            `gorm:"index;not null"`
	DateFrom  time.Time       `gorm:"not null"`
	DateTo    time.Time       `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"` // displayed "was" price
	SalePrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
}

// ActiveAt reports whether the sale covers the given moment's calendar day
// (inclusive bounds, compared at day resolution).
func (s *Sale) ActiveAt(at time.Time) bool {
	day := toDay(at)
	return !day.Before(toDay(s.DateFrom)) && !day.After(toDay(s.DateTo))
}

func toDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
