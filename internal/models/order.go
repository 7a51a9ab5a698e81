package models

import "time"

const (
	OrderStatusCreated = "Created"
	OrderStatusPaid    = "Paid"
)

type Order struct {
	ID           uint  `gorm:"primaryKey"`
	UserID       *uint `gorm:"index"`
	User         *User
	SessionID    *string `gorm:"index"`
	FullName     string
	Email        string
	Phone        string
	DeliveryType string
	PaymentType  string
	City         string
	Address      string
	PaidFor      bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	Baskets      []Basket `gorm:"foreignKey:OrderID"`
}

// Status is derived from the one-way paid flag.
func (o *Order) Status() string {
	if o.PaidFor {
		return OrderStatusPaid
	}
	return OrderStatusCreated
}
