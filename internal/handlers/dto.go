package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AlexSpeaker/shop-app/internal/models"
	"github.com/AlexSpeaker/shop-app/internal/order"
)

// BasketItemOut is one basket line presented as its product, priced at the
// line's fixed price once the order is paid, otherwise at the product's
// current effective price.
type BasketItemOut struct {
	ID           uint            `json:"id"` // product id
	Category     uint            `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Count        int             `json:"count"`
	Date         time.Time       `json:"date"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	FreeDelivery bool            `json:"freeDelivery"`
	Reviews      int             `json:"reviews"`
	Rating       *float64        `json:"rating"`
}

func NewBasketItemOut(line *models.Basket, now time.Time) BasketItemOut {
	price := line.Product.ActualPrice(now)
	if line.FixedPrice.Valid {
		price = line.FixedPrice.Decimal
	}
	return BasketItemOut{
		ID:           line.ProductID,
		Category:     line.Product.CategoryID,
		Price:        price,
		Count:        line.Count,
		Date:         line.Product.CreatedAt,
		Title:        line.Product.Title,
		Description:  line.Product.Description,
		FreeDelivery: line.Product.FreeDelivery,
		Reviews:      len(line.Product.Reviews),
		Rating:       line.Product.Rating(),
	}
}

func NewBasketOut(lines []models.Basket, now time.Time) []BasketItemOut {
	out := make([]BasketItemOut, 0, len(lines))
	for i := range lines {
		out = append(out, NewBasketItemOut(&lines[i], now))
	}
	return out
}

type OrderOut struct {
	ID           uint            `json:"id"`
	CreatedAt    string          `json:"createdAt"`
	FullName     string          `json:"fullName"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	DeliveryType string          `json:"deliveryType"`
	PaymentType  string          `json:"paymentType"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	Status       string          `json:"status"`
	City         string          `json:"city"`
	Address      string          `json:"address"`
	Products     []BasketItemOut `json:"products"`
}

func NewOrderOut(o *models.Order, now time.Time) OrderOut {
	return OrderOut{
		ID:           o.ID,
		CreatedAt:    o.CreatedAt.Format("2006-01-02 15:04"),
		FullName:     o.FullName,
		Email:        o.Email,
		Phone:        o.Phone,
		DeliveryType: o.DeliveryType,
		PaymentType:  o.PaymentType,
		TotalCost:    order.TotalCost(o, now),
		Status:       o.Status(),
		City:         o.City,
		Address:      o.Address,
		Products:     NewBasketOut(o.Baskets, now),
	}
}

// ProductOut is the catalog view of a product.
type ProductOut struct {
	ID              uint             `json:"id"`
	Category        uint             `json:"category"`
	Price           decimal.Decimal  `json:"price"`
	OldPrice        *decimal.Decimal `json:"oldPrice,omitempty"` // displayed "was" price during a sale
	Count           int              `json:"count"`
	Date            time.Time        `json:"date"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	FullDescription string           `json:"fullDescription,omitempty"`
	FreeDelivery    bool             `json:"freeDelivery"`
	Reviews         int              `json:"reviews"`
	Rating          *float64         `json:"rating"`
}

func NewProductOut(p *models.Product, now time.Time) ProductOut {
	out := ProductOut{
		ID:              p.ID,
		Category:        p.CategoryID,
		Price:           p.ActualPrice(now),
		Count:           p.Count,
		Date:            p.CreatedAt,
		Title:           p.Title,
		Description:     p.Description,
		FullDescription: p.FullDescription,
		FreeDelivery:    p.FreeDelivery,
		Reviews:         len(p.Reviews),
		Rating:          p.Rating(),
	}
	for i := range p.Sales {
		if p.Sales[i].ActiveAt(now) {
			old := p.Sales[i].Price
			out.OldPrice = &old
			break
		}
	}
	return out
}
