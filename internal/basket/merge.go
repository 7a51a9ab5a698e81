package basket

import (
	"gorm.io/gorm"

	"github.com/AlexSpeaker/shop-app/internal/models"
)

// MergeBaskets folds the anonymous session's unordered lines into the user's
// at login. Duplicate-product lines collapse into one with summed counts; the
// survivors are reassigned to the user in a single batch write. Inventory is
// untouched: the merge only changes who owns already-reserved units.
func MergeBaskets(tx *gorm.DB, user *models.User, anonToken string) error {
	var lines []models.Basket
	err := tx.
		Where("(user_id = ? OR session_id = ?) AND order_id IS NULL", user.ID, anonToken).
		Order("product_id, id").
		Find(&lines).Error
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	userID := user.ID
	var merged []models.Basket
	for _, line := range lines {
		if n := len(merged); n > 0 && merged[n-1].ProductID == line.ProductID {
			merged[n-1].Count += line.Count
			if err := tx.Delete(&models.Basket{}, line.ID).Error; err != nil {
				return err
			}
			continue
		}
		line.UserID = &userID
		line.SessionID = nil
		merged = append(merged, line)
	}

	return tx.Save(&merged).Error
}

// ClaimOrders reassigns the anonymous session's orders to the user and stamps
// the user's contact details on them, mirroring what checkout does for
// authenticated callers.
func ClaimOrders(tx *gorm.DB, user *models.User, anonToken string) error {
	var orders []models.Order
	if err := tx.Where("session_id = ?", anonToken).Find(&orders).Error; err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	userID := user.ID
	for i := range orders {
		orders[i].UserID = &userID
		orders[i].SessionID = nil
		orders[i].FullName = user.FullName
		orders[i].Email = user.Email
		orders[i].Phone = user.Phone
	}
	return tx.Save(&orders).Error
}
