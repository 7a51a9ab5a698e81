package basket

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AlexSpeaker/shop-app/internal/identity"
	"github.com/AlexSpeaker/shop-app/internal/inventory"
	"github.com/AlexSpeaker/shop-app/internal/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotFound        = errors.New("basket line not found")
)

// Service coordinates the inventory ledger and the basket lines of one
// identity. Every mutation runs in a single transaction: a failed reservation
// leaves neither a decremented count nor a basket line behind.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Add reserves qty units of the product for the identity and grows (or
// creates) its unordered basket line. Returns the identity's full basket.
func (s *Service) Add(id identity.Identity, productID uint, qty int) ([]models.Basket, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := inventory.Reserve(tx, productID, qty); err != nil {
			return err
		}

		var line models.Basket
		err := id.Scope(tx).
			Where("product_id = ? AND order_id IS NULL", productID).
			First(&line).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			userID, sessionID := id.Columns()
			line = models.Basket{
				ProductID: productID,
				UserID:    userID,
				SessionID: sessionID,
			}
		} else if err != nil {
			return err
		}

		line.Count += qty
		return tx.Save(&line).Error
	})
	if err != nil {
		return nil, err
	}

	return s.List(id)
}

// List returns the identity's unordered lines with products, sales and
// reviews preloaded so effective price and rating can be derived at read time.
func (s *Service) List(id identity.Identity) ([]models.Basket, error) {
	var lines []models.Basket
	err := id.Scope(s.db).
		Where("order_id IS NULL").
		Preload("Product").
		Preload("Product.Sales").
		Preload("Product.Reviews").
		Order("id").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove releases qty reserved units back to the product. Releasing at least
// the whole line deletes it; otherwise the line shrinks. Both the product row
// and the line are locked so concurrent removals cannot lose updates.
func (s *Service) Remove(id identity.Identity, productID uint, qty int) ([]models.Basket, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := inventory.LockForUpdate(tx).First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var line models.Basket
		err := id.Scope(inventory.LockForUpdate(tx)).
			Where("product_id = ? AND order_id IS NULL", productID).
			First(&line).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		if qty >= line.Count {
			if _, err := inventory.Release(tx, productID, line.Count); err != nil {
				return err
			}
			return tx.Delete(&line).Error
		}

		if _, err := inventory.Release(tx, productID, qty); err != nil {
			return err
		}
		line.Count -= qty
		return tx.Model(&line).Update("count", line.Count).Error
	})
	if err != nil {
		return nil, err
	}

	return s.List(id)
}
