package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              uint            `gorm:"primaryKey"`
	CategoryID      uint            `gorm:"index;not null"`
	Category        Category
	Title           string          `gorm:"not null"`
	Description     string
	FullDescription string
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Count           int             `gorm:"not null;default:0"` // units available for reservation
	FreeDelivery    bool            `gorm:"not null;default:false"`
	Archived        bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Sales           []Sale          `gorm:"foreignKey:ProductID"`
	Reviews         []Review        `gorm:"foreignKey:ProductID"`
}

// ActualPrice returns the sale price of the sale active at now, or the base
// price when no sale is running. Sales must be preloaded.
func (p *Product) ActualPrice(now time.Time) decimal.Decimal {
	for _, s := range p.Sales {
		if s.ActiveAt(now) {
			return s.SalePrice
		}
	}
	return p.Price
}

// Rating returns the average review rate rounded to two decimals, or nil when
// the product has no reviews. Reviews must be preloaded.
func (p *Product) Rating() *float64 {
	if len(p.Reviews) == 0 {
		return nil
	}
	var sum int
	for _, r := range p.Reviews {
		sum += r.Rate
	}
	avg := float64(sum) / float64(len(p.Reviews))
	avg = float64(int(avg*100+0.5)) / 100
	return &avg
}
