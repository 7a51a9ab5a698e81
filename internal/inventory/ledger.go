package inventory

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AlexSpeaker/shop-app/internal/models"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("product not found")
)

// Reserve row-locks the product and moves qty units out of its available count.
// The caller must already be inside a transaction; Reserve never commits.
func Reserve(tx *gorm.DB, productID uint, qty int) (*models.Product, error) {
	if qty < 1 {
		return nil, fmt.Errorf("reserve quantity must be positive, got %d", qty)
	}

	var product models.Product
	if err := LockForUpdate(tx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if product.Archived {
		return nil, ErrNotFound
	}
	if product.Count < qty {
		return nil, ErrInsufficientStock
	}

	product.Count -= qty
	if err := tx.Model(&product).Update("count", product.Count).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Release row-locks the product and returns qty reserved units to its count.
func Release(tx *gorm.DB, productID uint, qty int) (*models.Product, error) {
	if qty < 1 {
		return nil, fmt.Errorf("release quantity must be positive, got %d", qty)
	}

	var product models.Product
	if err := LockForUpdate(tx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	product.Count += qty
	if err := tx.Model(&product).Update("count", product.Count).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// LockForUpdate adds SELECT ... FOR UPDATE on dialects that support it. SQLite
// has no row locks; its single-writer model serializes writes instead.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
