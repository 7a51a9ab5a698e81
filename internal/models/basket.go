package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Basket is one reserved line: Count units of a product set aside for either an
// authenticated user or an anonymous session, exactly one of which is set while
// the line is unordered. FixedPrice stays null until the owning order is paid.
type Basket struct {
	ID         uint    `gorm:"primaryKey"`
	ProductID  uint    `gorm:"index;not null"`
	Product    Product
	Count      int     `gorm:"not null;default:0"`
	UserID     *uint   `gorm:"index"`
	SessionID  *string `gorm:"index"`
	OrderID    *uint   `gorm:"index"` // null while the line is still "in basket"
	FixedPrice decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	CreatedAt  time.Time
}
