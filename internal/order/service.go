package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AlexSpeaker/shop-app/internal/identity"
	"github.com/AlexSpeaker/shop-app/internal/inventory"
	"github.com/AlexSpeaker/shop-app/internal/models"
)

var (
	ErrNotFound    = errors.New("order not found")
	ErrAlreadyPaid = errors.New("order is already paid")
)

// Service folds basket lines into orders and settles them. Reservation against
// inventory happened at add-to-basket time, so checkout never re-validates
// stock; payment is where prices get frozen.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// UpdateParams carries the contact and delivery fields filled in after
// checkout.
type UpdateParams struct {
	FullName     string
	Email        string
	Phone        string
	DeliveryType string
	PaymentType  string
	City         string
	Address      string
}

// Checkout converts the identity's unordered basket lines into a new order.
// Authenticated callers get their stored contact details copied onto it.
func (s *Service) Checkout(id identity.Identity) (uint, error) {
	var orderID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lines []models.Basket
		if err := id.Scope(tx).Where("order_id IS NULL").Find(&lines).Error; err != nil {
			return err
		}

		userID, sessionID := id.Columns()
		order := models.Order{UserID: userID, SessionID: sessionID}
		if userID != nil {
			var user models.User
			if err := tx.First(&user, *userID).Error; err != nil {
				return err
			}
			order.FullName = user.FullName
			order.Email = user.Email
			order.Phone = user.Phone
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if len(lines) > 0 {
			ids := make([]uint, 0, len(lines))
			for _, line := range lines {
				ids = append(ids, line.ID)
			}
			err := tx.Model(&models.Basket{}).
				Where("id IN ?", ids).
				Update("order_id", order.ID).Error
			if err != nil {
				return err
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// Get returns the order with its lines and their products preloaded.
func (s *Service) Get(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.preloaded(s.db).First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListForUser returns the user's orders, newest first.
func (s *Service) ListForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.preloaded(s.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Update fills the contact and delivery fields of an existing order.
func (s *Service) Update(orderID uint, params UpdateParams) (*models.Order, error) {
	var order models.Order
	err := s.db.First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	order.FullName = params.FullName
	order.Email = params.Email
	order.Phone = params.Phone
	order.DeliveryType = params.DeliveryType
	order.PaymentType = params.PaymentType
	order.City = params.City
	order.Address = params.Address
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Pay validates the card, then snapshots every line's effective price and
// flips the order to paid, all in one transaction. This is the moment price
// volatility stops affecting the order's total.
func (s *Service) Pay(orderID uint, card Card) (*models.Order, error) {
	if err := ValidateCard(card, time.Now()); err != nil {
		return nil, err
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := inventory.LockForUpdate(tx).First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if order.PaidFor {
			return ErrAlreadyPaid
		}

		var lines []models.Basket
		err = tx.Where("order_id = ?", order.ID).
			Preload("Product").
			Preload("Product.Sales").
			Find(&lines).Error
		if err != nil {
			return err
		}

		now := time.Now()
		for i := range lines {
			lines[i].FixedPrice = decimal.NewNullDecimal(lines[i].Product.ActualPrice(now))
		}
		if len(lines) > 0 {
			if err := tx.Omit("Product").Save(&lines).Error; err != nil {
				return err
			}
		}

		order.PaidFor = true
		order.Baskets = lines
		return tx.Model(&order).Update("paid_for", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete removes an order. Unpaid orders hand their reserved units back to
// inventory and drop their lines; paid reservations are consumed permanently,
// so their lines survive as purchase history.
func (s *Service) Delete(orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := inventory.LockForUpdate(tx).First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		if !order.PaidFor {
			var lines []models.Basket
			if err := tx.Where("order_id = ?", order.ID).Find(&lines).Error; err != nil {
				return err
			}
			for _, line := range lines {
				if _, err := inventory.Release(tx, line.ProductID, line.Count); err != nil {
					return err
				}
				if err := tx.Delete(&models.Basket{}, line.ID).Error; err != nil {
					return err
				}
			}
		}

		return tx.Delete(&order).Error
	})
}

// TotalCost sums the order's lines at their fixed price when set, otherwise at
// the product's current effective price.
func TotalCost(o *models.Order, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := range o.Baskets {
		line := &o.Baskets[i]
		price := line.Product.ActualPrice(now)
		if line.FixedPrice.Valid {
			price = line.FixedPrice.Decimal
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Count))))
	}
	return total
}

func (s *Service) preloaded(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Baskets").
		Preload("Baskets.Product").
		Preload("Baskets.Product.Sales").
		Preload("Baskets.Product.Reviews").
		Preload("User")
}
